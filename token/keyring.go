package token

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oarkflow/shamir"

	"github.com/oarkflow/paseto/v2"
)

// Keyring holds a small ring of currently valid local keys (keyID→key).
// Each rotation generates a fresh 32-byte key and, when shares are
// configured, splits it via Shamir so it can be backed up offline.
// Older keys are pruned once the ring exceeds its limit.
type Keyring struct {
	sync.RWMutex
	version        paseto.Version
	keys           map[string]ringEntry
	shares         map[string][][]byte
	rotationPeriod time.Duration
	limit          int
	totalShares    int
	threshold      int
	seq            uint64
	entropy        io.Reader
	nowFn          func() time.Time
}

type ringEntry struct {
	key       *paseto.SymKey
	expiresAt time.Time
	seq       uint64
}

func (e ringEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt.Add(GetClockSkew()))
}

// KeyringOption customizes a Keyring.
type KeyringOption func(*Keyring)

// WithKeyringShares splits every rotated key into total shares of which
// threshold are needed to rebuild it.
func WithKeyringShares(total, threshold int) KeyringOption {
	return func(r *Keyring) {
		r.totalShares = total
		r.threshold = threshold
	}
}

// WithKeyringNow injects a clock source.
func WithKeyringNow(fn func() time.Time) KeyringOption {
	return func(r *Keyring) {
		if fn != nil {
			r.nowFn = fn
		}
	}
}

// WithKeyringEntropy swaps the key material source.
func WithKeyringEntropy(rd io.Reader) KeyringOption {
	return func(r *Keyring) {
		if rd != nil {
			r.entropy = rd
		}
	}
}

// NewKeyring builds a ring for local tokens of version v and performs the
// first rotation. limit is how many keys are kept at once.
func NewKeyring(v paseto.Version, rotationPeriod time.Duration, limit int, opts ...KeyringOption) (*Keyring, error) {
	if _, err := paseto.ProtocolFor(v, paseto.PurposeLocal); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, errors.New("keyring limit must be at least 1")
	}
	if rotationPeriod <= 0 {
		return nil, errors.New("rotation period must be positive")
	}
	r := &Keyring{
		version:        v,
		keys:           make(map[string]ringEntry),
		shares:         make(map[string][][]byte),
		rotationPeriod: rotationPeriod,
		limit:          limit,
		entropy:        rand.Reader,
		nowFn:          defaultNow,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.totalShares > 0 && (r.threshold < 2 || r.threshold > r.totalShares) {
		return nil, fmt.Errorf("invalid share threshold %d of %d", r.threshold, r.totalShares)
	}
	if _, err := r.Rotate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Protocol returns the local protocol the ring's keys belong to.
func (r *Keyring) Protocol() paseto.Protocol {
	p, _ := paseto.ProtocolFor(r.version, paseto.PurposeLocal)
	return p
}

// Run rotates the ring every rotation period until ctx is done.
func (r *Keyring) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.rotationPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Rotate(); err != nil {
				return err
			}
		}
	}
}

// Rotate generates a new key, makes it current and prunes old keys.
func (r *Keyring) Rotate() (string, error) {
	r.Lock()
	defer r.Unlock()

	material := make([]byte, paseto.SymmetricKeyLength)
	if _, err := io.ReadFull(r.entropy, material); err != nil {
		return "", fmt.Errorf("%w: %v", paseto.ErrRandomnessUnavailable, err)
	}
	key, err := paseto.NewSymmetricKey(material, r.version)
	if err != nil {
		return "", err
	}
	kid := uuid.NewString()
	if r.totalShares > 0 {
		shares, err := shamir.Split(material, r.threshold, r.totalShares)
		if err != nil {
			return "", fmt.Errorf("split key: %w", err)
		}
		r.shares[kid] = shares
	}
	r.seq++
	r.keys[kid] = ringEntry{key: key, expiresAt: r.nowFn().Add(r.rotationPeriod * time.Duration(r.limit)), seq: r.seq}
	r.pruneLocked()
	return kid, nil
}

func (r *Keyring) pruneLocked() {
	if len(r.keys) <= r.limit {
		return
	}
	ids := make([]string, 0, len(r.keys))
	for id := range r.keys {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return r.keys[ids[i]].seq < r.keys[ids[j]].seq })
	for _, id := range ids[:len(ids)-r.limit] {
		delete(r.keys, id)
		delete(r.shares, id)
	}
}

// Current returns the newest unexpired key and its id.
func (r *Keyring) Current() (string, *paseto.SymKey, error) {
	r.RLock()
	defer r.RUnlock()
	var (
		newestID string
		newest   ringEntry
	)
	now := r.nowFn()
	for id, e := range r.keys {
		if e.expired(now) {
			continue
		}
		if e.seq > newest.seq {
			newestID, newest = id, e
		}
	}
	if newestID == "" {
		return "", nil, ErrNoActiveKey
	}
	return newestID, newest.key, nil
}

// Lookup returns the key for kid if it is still in the ring and not expired.
func (r *Keyring) Lookup(kid string) (*paseto.SymKey, error) {
	r.RLock()
	defer r.RUnlock()
	e, ok := r.keys[kid]
	if !ok || e.expired(r.nowFn()) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, kid)
	}
	return e.key, nil
}

// Shares returns the stored Shamir shares for kid (nil if none).
func (r *Keyring) Shares(kid string) [][]byte {
	r.RLock()
	defer r.RUnlock()
	return r.shares[kid]
}

// Import rebuilds a key from its Shamir shares and inserts it as the newest key under kid.
func (r *Keyring) Import(kid string, shares [][]byte, expiresAt time.Time) error {
	if kid == "" {
		return errors.New("key id is empty")
	}
	if !expiresAt.After(r.nowFn()) {
		return fmt.Errorf("key %q expired at %s", kid, expiresAt.UTC().Format(time.RFC3339))
	}
	secret, err := shamir.Combine(shares)
	if err != nil {
		return fmt.Errorf("combine shares: %w", err)
	}
	key, err := paseto.NewSymmetricKey(secret, r.version)
	if err != nil {
		return err
	}
	r.Lock()
	defer r.Unlock()
	r.seq++
	r.keys[kid] = ringEntry{key: key, expiresAt: expiresAt, seq: r.seq}
	r.pruneLocked()
	return nil
}

func defaultNow() time.Time { return time.Now().UTC() }
