// Package symmetric implements the Symmetric Codec: AES-GCM encryption of
// an arbitrary payload under a freshly generated, never-reused key. It is
// the innermost layer of the encrypt path, wrapped next by the ECIES
// envelope and then framed by the Block Core.
package symmetric

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/cryptocore"
)

// NonceLen is the length of the random nonce prefixed to every ciphertext.
const NonceLen = 12

// ErrDecryptionFailed covers both tamper detection and malformed input.
var ErrDecryptionFailed = errors.New("symmetric: decryption failed")

// EncryptedValue is the wire form produced by EncryptJSON: a fresh key, and
// the nonce-prefixed, tag-suffixed ciphertext of the JSON-encoded value.
type EncryptedValue struct {
	Key           []byte
	EncryptedData []byte
}

// EncryptJSON serializes value as JSON, generates a random key and nonce,
// and seals it with AES-GCM. The caller owns the returned key and must
// never reuse it for a second value.
func EncryptJSON(value interface{}) (EncryptedValue, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return EncryptedValue{}, errors.Wrap(err, "symmetric: marshal failed")
	}

	key := cryptocore.RandBytes(cryptocore.KeyLen)
	encrypted, err := EncryptWithKey(key, plaintext)
	if err != nil {
		return EncryptedValue{}, err
	}
	return EncryptedValue{Key: key, EncryptedData: encrypted}, nil
}

// DecryptJSON inverts EncryptJSON, unmarshaling the recovered plaintext
// into out.
func DecryptJSON(key, encryptedData []byte, out interface{}) error {
	plaintext, err := DecryptWithKey(key, encryptedData)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, out); err != nil {
		return errors.Wrap(err, "symmetric: unmarshal failed")
	}
	return nil
}

// EncryptWithKey seals plaintext under key with a fresh random nonce,
// returning nonce||ciphertext||tag.
func EncryptWithKey(key, plaintext []byte) ([]byte, error) {
	core, err := cryptocore.New(key)
	if err != nil {
		return nil, errors.Wrap(err, "symmetric: backend init failed")
	}
	defer core.Wipe()

	nonce := cryptocore.RandBytes(NonceLen)
	sealed := core.Backend.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// DecryptWithKey inverts EncryptWithKey.
func DecryptWithKey(key, encryptedData []byte) ([]byte, error) {
	if len(encryptedData) < NonceLen {
		return nil, ErrDecryptionFailed
	}
	core, err := cryptocore.New(key)
	if err != nil {
		return nil, errors.Wrap(err, "symmetric: backend init failed")
	}
	defer core.Wipe()

	nonce := encryptedData[:NonceLen]
	ciphertext := encryptedData[NonceLen:]
	plaintext, err := core.Backend.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
