package paseto

import "errors"

var (
	// ErrMalformedEncoding is returned when a token segment is not canonical unpadded base64url.
	ErrMalformedEncoding = errors.New("token segment is not valid base64url")

	// ErrInvalidFormat indicates that the token header or segment structure is not recognized.
	ErrInvalidFormat = errors.New("token is malformed")

	// ErrInvalidKey occurred when the given key has the wrong length or is not intended for
	// the requested version and purpose of PASETO.
	ErrInvalidKey = errors.New("the given key is not valid for this version and purpose of PASETO")

	// ErrWrongVersionOrPurpose is returned when the token header does not match the protocol the caller expects.
	ErrWrongVersionOrPurpose = errors.New("token version or purpose does not match")

	// ErrAuthenticationFailed is returned when a local token fails authentication.
	ErrAuthenticationFailed = errors.New("token authentication failed")

	// ErrSignatureInvalid is returned when signature is invalid for provided message.
	ErrSignatureInvalid = errors.New("invalid token signature")

	// ErrRandomnessUnavailable is returned when the secure random source cannot supply a nonce.
	ErrRandomnessUnavailable = errors.New("secure random source unavailable")
)
