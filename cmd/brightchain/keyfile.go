package main

import (
	"encoding/json"
	"os"

	"github.com/JessicaMulein/BrightChain/internal/configfile"
	"github.com/JessicaMulein/BrightChain/internal/memprotect"
	"github.com/JessicaMulein/BrightChain/internal/symmetric"
)

// keyFileProtector zeroes the wrapping key derived from a passphrase as
// soon as it has sealed or unsealed a private key.
var keyFileProtector = memprotect.New()

// encryptedKeyFile is the on-disk form of a passphrase-protected Member
// private key: the Argon2id parameters used to re-derive the wrapping key,
// plus the AES-GCM-sealed private key bytes.
type encryptedKeyFile struct {
	Salt        []byte `json:"salt"`
	Memory      uint32 `json:"memory"`
	Iterations  uint32 `json:"iterations"`
	Parallelism uint8  `json:"parallelism"`
	KeyLen      uint32 `json:"key_len"`
	Ciphertext  []byte `json:"ciphertext"`
}

// writeEncryptedKeyFile derives a wrapping key from passphrase via
// Argon2id and writes privateKey, sealed under that key, to path.
func writeEncryptedKeyFile(path string, passphrase, privateKey []byte) error {
	kdf := configfile.NewArgon2idKDF()
	key, err := kdf.DeriveKey(passphrase)
	if err != nil {
		return err
	}
	defer keyFileProtector.SecureZero(key)

	ciphertext, err := symmetric.EncryptWithKey(key, privateKey)
	if err != nil {
		return err
	}

	f := encryptedKeyFile{
		Salt:        kdf.Salt,
		Memory:      kdf.Memory,
		Iterations:  kdf.Iterations,
		Parallelism: kdf.Parallelism,
		KeyLen:      kdf.KeyLen,
		Ciphertext:  ciphertext,
	}
	encoded, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o600)
}

// readEncryptedKeyFile inverts writeEncryptedKeyFile, re-deriving the
// wrapping key from passphrase under the stored Argon2id parameters.
func readEncryptedKeyFile(path string, passphrase []byte) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f encryptedKeyFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}

	kdf := configfile.Argon2idKDF{
		Salt:        f.Salt,
		Memory:      f.Memory,
		Iterations:  f.Iterations,
		Parallelism: f.Parallelism,
		KeyLen:      f.KeyLen,
	}
	key, err := kdf.DeriveKey(passphrase)
	if err != nil {
		return nil, err
	}
	defer keyFileProtector.SecureZero(key)

	return symmetric.DecryptWithKey(key, f.Ciphertext)
}
