package quorum

import (
	"encoding/binary"
	"math/bits"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/ecies"
	"github.com/JessicaMulein/BrightChain/internal/member"
	"github.com/JessicaMulein/BrightChain/internal/memprotect"
	"github.com/JessicaMulein/BrightChain/internal/symmetric"
	"github.com/JessicaMulein/BrightChain/internal/telemetry"
)

// protector zeroes share plaintext and the recombined symmetric key once
// Seal/Unseal no longer need them.
var protector = memprotect.New()

// MinimumShares and MaximumShares bound the member count a quorum record
// may be sealed against.
const (
	MinimumShares = 2
	MaximumShares = 1048575
)

var (
	ErrNotEnoughMembersToUnlock = errors.New("quorum: NotEnoughMembersToUnlock")
	ErrTooManyMembersToUnlock   = errors.New("quorum: TooManyMembersToUnlock")
	ErrInvalidMemberArray       = errors.New("quorum: InvalidMemberArray")
	ErrMissingPrivateKeys       = errors.New("quorum: MissingPrivateKeys")
	ErrEncryptedShareNotFound   = errors.New("quorum: EncryptedShareNotFound")
	ErrMemberNotFound           = errors.New("quorum: MemberNotFound")
	ErrFailedToSeal             = errors.New("quorum: FailedToSeal")
)

// QuorumDataRecord is the durable, caller-persisted output of quorumSeal.
type QuorumDataRecord struct {
	AgentID                   uuid.UUID
	MemberIDs                 []uuid.UUID
	SharesRequired            int
	EncryptedData             []byte
	EncryptedSharesByMemberID map[uuid.UUID][]byte
}

// Seal implements quorumSeal: symmetric-encrypt value, Shamir-split the
// resulting key, and ECIES-wrap one share per member.
func Seal(agentID uuid.UUID, value interface{}, members []*member.Member, sharesRequired int) (*QuorumDataRecord, error) {
	start := time.Now()
	defer func() { telemetry.QuorumSealDuration.Observe(time.Since(start).Seconds()) }()

	// 1. Validate member count and threshold bounds.
	if len(members) < MinimumShares || len(members) > MaximumShares {
		return nil, ErrInvalidMemberArray
	}
	if sharesRequired == 0 {
		sharesRequired = len(members)
	}
	if sharesRequired < MinimumShares || sharesRequired > len(members) {
		return nil, ErrInvalidMemberArray
	}

	// 2. Symmetric-encrypt the serialized value.
	enc, err := symmetric.EncryptJSON(value)
	if err != nil {
		return nil, errors.Wrap(ErrFailedToSeal, err.Error())
	}
	defer protector.SecureZero(enc.Key)

	// 3. Reinitialize the secret-sharing field width for this member count.
	bitsWidth, err := bitsForMemberCount(len(members))
	if err != nil {
		return nil, err
	}
	field, err := NewField(bitsWidth)
	if err != nil {
		return nil, err
	}

	// 4. Split the symmetric key into len(members) shares with the given
	// threshold, one x-coordinate per member (1-indexed; 0 is reserved).
	xCoords := make([]int, len(members))
	for i := range members {
		xCoords[i] = i + 1
	}
	shares, err := Split(field, enc.Key, len(members), sharesRequired, xCoords)
	if err != nil {
		return nil, errors.Wrap(ErrFailedToSeal, err.Error())
	}

	// 5. ECIES-encrypt each share under its member's public key.
	encryptedShares := make(map[uuid.UUID][]byte, len(members))
	memberIDs := make([]uuid.UUID, len(members))
	for i, m := range members {
		shareBytes := encodeShare(shares[i], bitsWidth)
		wrapped, err := ecies.Encrypt(m.PublicKey, shareBytes)
		protector.SecureZero(shareBytes)
		if err != nil {
			return nil, errors.Wrap(ErrFailedToSeal, err.Error())
		}
		encryptedShares[m.ID] = wrapped
		memberIDs[i] = m.ID
	}

	return &QuorumDataRecord{
		AgentID:                   agentID,
		MemberIDs:                 memberIDs,
		SharesRequired:            sharesRequired,
		EncryptedData:             enc.EncryptedData,
		EncryptedSharesByMemberID: encryptedShares,
	}, nil
}

// Unseal implements quorumUnseal, decoding into out (passed to
// symmetric.DecryptJSON / json.Unmarshal).
func Unseal(record *QuorumDataRecord, membersWithKeys []*member.Member, out interface{}) error {
	start := time.Now()
	defer func() { telemetry.QuorumUnsealDuration.Observe(time.Since(start).Seconds()) }()

	// 1. Require enough members, all with private keys loaded.
	if len(membersWithKeys) < record.SharesRequired {
		return ErrNotEnoughMembersToUnlock
	}
	if len(membersWithKeys) > len(record.MemberIDs) {
		return ErrTooManyMembersToUnlock
	}
	for _, m := range membersWithKeys {
		if !m.PrivateKeyLoaded {
			return ErrMissingPrivateKeys
		}
	}

	// 3. Reinitialize secret sharing with the original member count.
	bitsWidth, err := bitsForMemberCount(len(record.MemberIDs))
	if err != nil {
		return err
	}
	field, err := NewField(bitsWidth)
	if err != nil {
		return err
	}

	// 2. Decrypt each provided member's share.
	shares := make([]Share, 0, len(membersWithKeys))
	for _, m := range membersWithKeys {
		if !memberIDKnown(record.MemberIDs, m.ID) {
			return ErrMemberNotFound
		}
		ciphertext, ok := record.EncryptedSharesByMemberID[m.ID]
		if !ok {
			return ErrEncryptedShareNotFound
		}
		priv, err := m.PrivateKey()
		if err != nil {
			return ErrMissingPrivateKeys
		}
		shareBytes, err := ecies.DecryptWithHeader(priv, ciphertext)
		if err != nil {
			return errors.Wrap(ErrFailedToSeal, err.Error())
		}
		share, err := decodeShare(shareBytes, bitsWidth)
		protector.SecureZero(shareBytes)
		if err != nil {
			return errors.Wrap(ErrFailedToSeal, err.Error())
		}
		shares = append(shares, share)
	}

	// 4. Combine shares, decrypt the symmetric payload.
	key, err := Combine(field, shares)
	if err != nil {
		return errors.Wrap(ErrFailedToSeal, err.Error())
	}
	defer protector.SecureZero(key)
	if err := symmetric.DecryptJSON(key, record.EncryptedData, out); err != nil {
		return errors.Wrap(ErrFailedToSeal, err.Error())
	}
	return nil
}

// bitsForMemberCount computes bits = max(3, ceil(log2(memberCount+1))),
// returning ErrInvalidBitRange if that exceeds MaxBits. The "+1" reserves x=0 for the secret
// itself even when memberCount is an exact power of two, resolving an
// edge case the literal ceil(log2(members.length)) formula leaves
// ambiguous (see DESIGN.md).
func bitsForMemberCount(memberCount int) (int, error) {
	threshold := memberCount + 1
	needed := bits.Len(uint(threshold - 1))
	if needed < MinBits {
		needed = MinBits
	}
	if needed > MaxBits {
		return 0, ErrInvalidBitRange
	}
	return needed, nil
}

// encodeShare serializes a Share to a fixed-width byte string: a 4-byte
// big-endian x-coordinate followed by each chunk value, each packed into
// ceil(bits/8) big-endian bytes.
func encodeShare(s Share, fieldBits int) []byte {
	elemWidth := (fieldBits + 7) / 8
	out := make([]byte, 4+len(s.Values)*elemWidth)
	binary.BigEndian.PutUint32(out[:4], uint32(s.XCoordinate))
	for i, v := range s.Values {
		putUintBE(out[4+i*elemWidth:4+(i+1)*elemWidth], uint32(v))
	}
	return out
}

func decodeShare(data []byte, fieldBits int) (Share, error) {
	elemWidth := (fieldBits + 7) / 8
	if len(data) < 4 || (len(data)-4)%elemWidth != 0 {
		return Share{}, errors.New("quorum: malformed share encoding")
	}
	x := int(binary.BigEndian.Uint32(data[:4]))
	numValues := (len(data) - 4) / elemWidth
	values := make([]int, numValues)
	for i := 0; i < numValues; i++ {
		values[i] = int(getUintBE(data[4+i*elemWidth : 4+(i+1)*elemWidth]))
	}
	return Share{XCoordinate: x, Values: values}, nil
}

func putUintBE(dst []byte, v uint32) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte(v)
		v >>= 8
	}
}

func getUintBE(src []byte) uint32 {
	var v uint32
	for _, b := range src {
		v = (v << 8) | uint32(b)
	}
	return v
}

func memberIDKnown(ids []uuid.UUID, id uuid.UUID) bool {
	for _, known := range ids {
		if known == id {
			return true
		}
	}
	return false
}
