package paseto

import (
	"crypto/ed25519"
	"crypto/subtle"
	"io"
	"runtime"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	v2NonceSize = chacha20poly1305.NonceSizeX
	v2TagSize   = chacha20poly1305.Overhead

	v4NonceSize = 32
	v4TagSize   = 32
	v4KeySize   = chacha20.KeySize

	signatureSize = ed25519.SignatureSize
)

// Domain separation strings for the v4 key split.
const (
	v4EncryptionInfo = "paseto-encryption-key"
	v4AuthInfo       = "paseto-auth-key-for-aead"
)

// derivedKeys holds per-call key material. encKey is borrowed from the caller for v2.
type derivedKeys struct {
	encKey       []byte
	authKey      []byte
	counterNonce []byte
	borrowed     bool
}

// wipe zeroes everything derived for this call. Borrowed caller keys are left alone.
func (d *derivedKeys) wipe() {
	if d == nil {
		return
	}
	if !d.borrowed {
		wipe(d.encKey)
	}
	wipe(d.authKey)
	wipe(d.counterNonce)
}

// deriveKeys splits the master key for one encrypt or decrypt call.
//
// v2 keeps the master key as the AEAD key and derives the XChaCha20 nonce as
// BLAKE2b-192 keyed with the random nonce over the plaintext.
// v4 derives Ek||n2 = BLAKE2b-448(k, info||n) and Ak = BLAKE2b-256(k, info||n).
func deriveKeys(v Version, masterKey, nonce, payload []byte) (*derivedKeys, error) {
	switch v {
	case Version2:
		n, err := keyedHash(v2NonceSize, nonce, payload)
		if err != nil {
			return nil, err
		}
		return &derivedKeys{encKey: masterKey, counterNonce: n, borrowed: true}, nil
	case Version4:
		tmp, err := keyedHash(v4KeySize+chacha20.NonceSizeX, masterKey, []byte(v4EncryptionInfo), nonce)
		if err != nil {
			return nil, err
		}
		ak, err := keyedHash(v4KeySize, masterKey, []byte(v4AuthInfo), nonce)
		if err != nil {
			wipe(tmp)
			return nil, err
		}
		return &derivedKeys{
			encKey:       tmp[:v4KeySize:v4KeySize],
			counterNonce: tmp[v4KeySize:],
			authKey:      ak,
		}, nil
	}
	return nil, ErrInvalidFormat
}

// keyedHash computes BLAKE2b with the given output size and key over the concatenated parts.
func keyedHash(size int, key []byte, parts ...[]byte) ([]byte, error) {
	h, err := blake2b.New(size, key)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil), nil
}

// aeadSeal performs XChaCha20-Poly1305 encryption and returns ciphertext||tag.
func aeadSeal(key, nonce, plaintext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return aead.Seal(nil, nonce, plaintext, ad), nil
}

// aeadOpen authenticates and decrypts. Any failure is reported as ErrAuthenticationFailed.
func aeadOpen(key, nonce, ciphertext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	plain, err := aead.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plain, nil
}

// streamXOR applies the unauthenticated XChaCha20 keystream to in.
func streamXOR(key, nonce, in []byte) ([]byte, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	c.XORKeyStream(out, in)
	return out, nil
}

// signEd25519 signs msg with a 32-byte seed or a 64-byte expanded key.
func signEd25519(secret, msg []byte) ([]byte, error) {
	switch len(secret) {
	case ed25519.SeedSize:
		priv := ed25519.NewKeyFromSeed(secret)
		defer wipe(priv)
		return ed25519.Sign(priv, msg), nil
	case ed25519.PrivateKeySize:
		return ed25519.Sign(ed25519.PrivateKey(secret), msg), nil
	}
	return nil, ErrInvalidKey
}

func verifyEd25519(pub, msg, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != signatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}

// expandedKeyConsistent reports whether the public half of a 64-byte key matches its seed.
func expandedKeyConsistent(secret []byte) bool {
	priv := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	defer wipe(priv)
	return constantTimeEqual(priv[ed25519.SeedSize:], secret[ed25519.SeedSize:])
}

// constantTimeEqual treats a length mismatch exactly like a content mismatch.
func constantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// readNonce fills a fresh nonce of size n. A short or failed read is fatal.
func readNonce(r io.Reader, n int) ([]byte, error) {
	nonce := make([]byte, n)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, ErrRandomnessUnavailable
	}
	return nonce, nil
}

// wipe zeroes the provided buffer.
//
//go:noinline
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
