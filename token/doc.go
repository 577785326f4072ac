// Package token issues and validates JSON claim tokens on top of package paseto.
//
// A Generator fills the time claims (iat, nbf and, with a TTL, exp) and seals
// the claim set; a Verifier opens it and runs a Validator. Times are RFC 3339
// strings in UTC. Keys can be static or come from a Keyring, in which case
// the key id travels in a JSON footer under "kid".
//
//	gen, _ := token.NewGenerator(paseto.NewPV4Local(), key, token.WithTTL(time.Hour))
//	tok, _ := gen.Generate(token.Claims{token.ClaimSubject: "user123"})
//
//	ver, _ := token.NewVerifier(paseto.NewPV4Local(), key,
//		token.WithValidator(token.NewValidator(token.ForSubject("user123"))))
//	parsed, err := ver.Verify(tok)
package token
