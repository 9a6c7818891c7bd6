package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akrylysov/pogreb"
	"golang.org/x/crypto/scrypt"
)

// The profile keystore is a pogreb database holding one scrypt/AES-GCM
// sealed record with the mnemonic and derivation parameters. The file
// is created by the init action and read back by start and refill.

var (
	ErrProfileExists   = errors.New("profile already exists on disk")
	ErrProfileNotFound = errors.New("profile does not exist on disk")
	ErrWrongPassword   = errors.New("cannot decrypt profile, wrong password?")
)

var (
	saltKey    = []byte("salt")
	profileKey = []byte("profile")
)

const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 16
)

// Profile is the persisted secret material of one faucet deployment.
type Profile struct {
	Mnemonic    string    `json:"mnemonic"`
	CoinType    uint32    `json:"coinType"`
	Instance    uint32    `json:"instance"`
	Concurrency int       `json:"concurrency"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StoreProfile encrypts the profile with the password and writes it to
// a new keystore at path. It refuses to overwrite an existing keystore.
func StoreProfile(path, password string, profile Profile) error {
	if _, err := os.Stat(path); err == nil {
		return ErrProfileExists
	}

	plaintext, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	aead, err := sealingCipher(password, salt)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := append(nonce, aead.Seal(nil, nonce, plaintext, nil)...)

	db, err := pogreb.Open(path, nil)
	if err != nil {
		return fmt.Errorf("open keystore: %w", err)
	}
	defer db.Close()

	if err := db.Put(saltKey, salt); err != nil {
		return fmt.Errorf("write keystore salt: %w", err)
	}
	if err := db.Put(profileKey, sealed); err != nil {
		return fmt.Errorf("write keystore profile: %w", err)
	}
	krlogger().Infow("Stored encrypted profile", "path", path)
	return nil
}

// LoadProfile reads the keystore at path and decrypts the profile.
func LoadProfile(path, password string) (Profile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Profile{}, ErrProfileNotFound
	}

	db, err := pogreb.Open(path, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("open keystore: %w", err)
	}
	defer db.Close()

	salt, err := db.Get(saltKey)
	if err != nil || salt == nil {
		return Profile{}, fmt.Errorf("read keystore salt: %w", err)
	}
	sealed, err := db.Get(profileKey)
	if err != nil || sealed == nil {
		return Profile{}, fmt.Errorf("read keystore profile: %w", err)
	}

	aead, err := sealingCipher(password, salt)
	if err != nil {
		return Profile{}, err
	}
	if len(sealed) < aead.NonceSize() {
		return Profile{}, ErrWrongPassword
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Profile{}, ErrWrongPassword
	}

	var profile Profile
	if err := json.Unmarshal(plaintext, &profile); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	krlogger().Infow("Profile loaded from disk", "path", path)
	return profile, nil
}

func sealingCipher(password string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive keystore key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init keystore cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init keystore aead: %w", err)
	}
	return aead, nil
}
