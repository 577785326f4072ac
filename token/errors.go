package token

import "errors"

var (
	ErrInvalidClaims    = errors.New("token claims are not a JSON object")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not valid yet")
	ErrClaimMismatch    = errors.New("token claim does not match")
	ErrMissingClaim     = errors.New("token claim is missing")
	ErrReservedClaim    = errors.New("claim name is reserved")
	ErrUnknownKeyID     = errors.New("unknown key id")
	ErrNoActiveKey      = errors.New("no active key available")
)
