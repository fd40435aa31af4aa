// Package member models the minimal identity surface the block engine
// depends on: a stable ID, a public key usable as an ECIES recipient, and
// (optionally) a loaded private key for unsealing quorum shares. The rest
// of membership — enrollment, revocation, group management — lives outside
// this core and is out of scope here.
package member

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/ecies"
	"github.com/JessicaMulein/BrightChain/internal/memprotect"
)

// ErrPrivateKeyNotLoaded is returned by operations that need a private key
// when none has been loaded for this Member.
var ErrPrivateKeyNotLoaded = errors.New("member: private key not loaded")

// protector zeroes private key material on Wipe. Shared across Members
// since it carries no per-instance state beyond the enabled flag.
var protector = memprotect.New()

// Member is a participant capable of receiving ECIES-wrapped quorum shares.
type Member struct {
	ID               uuid.UUID
	PublicKey        []byte
	privateKey       []byte
	PrivateKeyLoaded bool
}

// New creates a Member with a freshly generated ECIES key pair.
func New() (*Member, error) {
	pub, priv, err := ecies.GenerateKeyPair()
	if err != nil {
		return nil, errors.Wrap(err, "member: key generation failed")
	}
	return &Member{
		ID:               uuid.New(),
		PublicKey:        pub,
		privateKey:       priv,
		PrivateKeyLoaded: true,
	}, nil
}

// NewFromPublicKey creates a Member known only by its public key, as is
// the case for every other member of a quorum from a given member's point
// of view.
func NewFromPublicKey(id uuid.UUID, publicKey []byte) *Member {
	return &Member{ID: id, PublicKey: publicKey}
}

// LoadPrivateKey attaches a private key to an existing Member, e.g. after
// it has been unlocked from a passphrase-protected key file.
func (m *Member) LoadPrivateKey(privateKey []byte) {
	m.privateKey = privateKey
	m.PrivateKeyLoaded = true
}

// PrivateKey returns the loaded private key, or ErrPrivateKeyNotLoaded if
// none is present.
func (m *Member) PrivateKey() ([]byte, error) {
	if !m.PrivateKeyLoaded {
		return nil, ErrPrivateKeyNotLoaded
	}
	return m.privateKey, nil
}

// ShortID returns the first 8 hex characters of the Member's ID, suitable
// for log lines where the full UUID would be noise.
func (m *Member) ShortID() string {
	id := m.ID.String()
	// UUIDs are hyphenated; strip them before truncating so the short form
	// is still 8 hex characters of entropy rather than including a '-'.
	compact := hex.EncodeToString(m.ID[:])
	if len(compact) < 8 {
		return id
	}
	return compact[:8]
}

// PublicKeyHash returns SHA-256(PublicKey), used to derive per-member
// integrity keys (e.g. ExtendedCBL's filename MAC) without exposing the
// public key bytes themselves as key material directly.
func (m *Member) PublicKeyHash() []byte {
	sum := sha256.Sum256(m.PublicKey)
	return sum[:]
}

// Wipe clears the private key from memory. The Member remains usable for
// public-key operations afterward.
func (m *Member) Wipe() {
	protector.SecureZero(m.privateKey)
	m.privateKey = nil
	m.PrivateKeyLoaded = false
}
