// Package keys generates, decodes, splits and stores PASETO key material
// for the command line tool.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/oarkflow/paseto/v2"
)

var (
	ErrInvalidLength = errors.New("length must be positive")
	ErrKeyDecode     = errors.New("key does not decode to a valid length")
)

// charset uses URL-safe base64 characters; its length is a power of two so
// masking a random byte selects uniformly.
var charset = [64]byte{
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm',
	'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '-', '_',
}

const charsetMask byte = 0x3F

// Generator produces key material from an entropy source.
type Generator struct {
	reader io.Reader
}

// NewGenerator uses crypto/rand.Reader unless a reader is given.
func NewGenerator(readers ...io.Reader) *Generator {
	reader := rand.Reader
	if len(readers) > 0 && readers[0] != nil {
		reader = readers[0]
	}
	return &Generator{reader: reader}
}

func (g *Generator) read(buf []byte) error {
	if _, err := io.ReadFull(g.reader, buf); err != nil {
		return fmt.Errorf("%w: %v", paseto.ErrRandomnessUnavailable, err)
	}
	return nil
}

// Symmetric returns 32 random bytes for local tokens.
func (g *Generator) Symmetric() ([]byte, error) {
	key := make([]byte, paseto.SymmetricKeyLength)
	if err := g.read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// SigningPair returns an Ed25519 key pair for public tokens.
func (g *Generator) SigningPair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	seed := make([]byte, ed25519.SeedSize)
	if err := g.read(seed); err != nil {
		return nil, nil, err
	}
	priv := ed25519.NewKeyFromSeed(seed)
	clear(seed)
	return priv.Public().(ed25519.PublicKey), priv, nil
}

// Secret returns a random URL-safe string of length characters.
func (g *Generator) Secret(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}
	buf := make([]byte, length)
	if err := g.read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = charset[buf[i]&charsetMask]
	}
	return string(buf), nil
}
