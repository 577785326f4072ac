// Package paseto builds and verifies PASETO v2 and v4 tokens.
//
// Local tokens are encrypted with a 32-byte shared key; public tokens are
// signed with Ed25519. Every call is self-contained: nonces and subkeys are
// derived per call and wiped afterwards, and keys are borrowed from the
// caller without being copied. All functions are safe for concurrent use.
//
//	key, _ := paseto.NewSymmetricKey(material, paseto.Version4)
//	tok, err := paseto.EncryptLocal(paseto.Version4, key, payload, paseto.WithFooter(footer))
//	msg, err := paseto.DecryptLocal(paseto.Version4, tok, key)
package paseto
