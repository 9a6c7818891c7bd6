// Package keyring owns the faucet's derived key pairs. It is the only
// place private keys live; the rest of the service works with public
// Identity projections and asks the keyring for signatures.
package keyring

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	base58 "github.com/jbenet/go-base58"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
	"go.uber.org/zap"

	"github.com/spigot/internal/spigot/logger"
	"github.com/spigot/internal/spigot/types"
)

func krlogger() *zap.SugaredLogger {
	return logger.Named("keyring")
}

var (
	ErrMnemonicEmpty   = errors.New("mnemonic phrase cannot be empty")
	ErrMnemonicInvalid = errors.New("mnemonic phrase is not valid")
	ErrUnknownIdentity = errors.New("identity is not part of this keyring")
	ErrPoolSize        = errors.New("distributor pool needs at least one account")
)

const (
	purposePath = uint32(44)
	changePath  = uint32(0)
)

// Keyring holds the holder and distributor key pairs derived from one
// mnemonic. Identities are derived once at construction and immutable
// afterwards; no rotation, no revocation.
type Keyring struct {
	hrp        string
	identities []types.Identity
	keys       map[uint32]*btcec.PrivateKey
}

// GenerateMnemonic creates a fresh 12 word recovery phrase.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return mnemonic, nil
}

// FromMnemonic derives concurrency+1 identities at
// m/44'/coinType'/instance'/0/i. Index 0 is the holder, indices
// 1..concurrency are distributors.
func FromMnemonic(mnemonic, hrp string, coinType, instance uint32, concurrency int) (*Keyring, error) {
	if mnemonic == "" {
		return nil, ErrMnemonicEmpty
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrMnemonicInvalid
	}
	if concurrency < 1 {
		return nil, ErrPoolSize
	}

	seed := bip39.NewSeed(mnemonic, "")
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}

	branch, err := deriveBranch(masterKey, coinType, instance)
	if err != nil {
		return nil, err
	}

	kr := &Keyring{
		hrp:  hrp,
		keys: make(map[uint32]*btcec.PrivateKey, concurrency+1),
	}
	for i := uint32(0); i <= uint32(concurrency); i++ {
		child, err := branch.NewChildKey(i)
		if err != nil {
			return nil, fmt.Errorf("derive identity %d: %w", i, err)
		}
		priv, pub := btcec.PrivKeyFromBytes(child.Key)
		pubKey := pub.SerializeCompressed()
		address, err := types.PubKeyToAddress(hrp, pubKey)
		if err != nil {
			return nil, fmt.Errorf("address of identity %d: %w", i, err)
		}
		kr.identities = append(kr.identities, types.Identity{
			Index:   i,
			PubKey:  pubKey,
			Address: address,
		})
		kr.keys[i] = priv
	}

	krlogger().Infow("Derived identities",
		"count", len(kr.identities),
		"holder", kr.identities[0].Address,
		"holderPubKey", base58.Encode(kr.identities[0].PubKey),
	)
	return kr, nil
}

func deriveBranch(masterKey *bip32.Key, coinType, instance uint32) (*bip32.Key, error) {
	steps := []uint32{
		bip32.FirstHardenedChild + purposePath,
		bip32.FirstHardenedChild + coinType,
		bip32.FirstHardenedChild + instance,
		changePath,
	}
	key := masterKey
	for _, step := range steps {
		next, err := key.NewChildKey(step)
		if err != nil {
			return nil, fmt.Errorf("derive path step %d: %w", step, err)
		}
		key = next
	}
	return key, nil
}

// Identities returns all identities, holder first. The returned slice
// must be treated as read-only.
func (kr *Keyring) Identities() []types.Identity {
	return kr.identities
}

// Holder returns the funded source account all refills originate from.
func (kr *Keyring) Holder() types.Identity {
	return kr.identities[0]
}

// Distributors returns the pool accounts that fund credit requests.
func (kr *Keyring) Distributors() []types.Identity {
	return kr.identities[1:]
}

// SignDigest signs a 32 byte digest with the identity's private key and
// returns a DER encoded signature.
func (kr *Keyring) SignDigest(identity types.Identity, digest []byte) ([]byte, error) {
	priv, ok := kr.keys[identity.Index]
	if !ok {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownIdentity, identity.Index)
	}
	sig := ecdsa.Sign(priv, digest)
	return sig.Serialize(), nil
}
