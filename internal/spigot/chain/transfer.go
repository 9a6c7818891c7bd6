package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spigot/internal/spigot/types"
)

// Signer produces signatures for identities it owns. The keyring
// implements this.
type Signer interface {
	SignDigest(identity types.Identity, digest []byte) ([]byte, error)
}

// Transfer is a chain-native token send. CreatedAt disambiguates
// otherwise identical transfers so their digests never collide.
type Transfer struct {
	ChainID      string        `json:"chainId"`
	Sender       types.Address `json:"sender"`
	SenderPubKey string        `json:"senderPubKey"`
	Recipient    types.Address `json:"recipient"`
	Amount       types.Amount  `json:"amount"`
	Fee          *types.Amount `json:"fee,omitempty"`
	GasPrice     *types.Amount `json:"gasPrice,omitempty"`
	GasLimit     *types.Amount `json:"gasLimit,omitempty"`
	Memo         string        `json:"memo,omitempty"`
	CreatedAt    int64         `json:"createdAt"`
}

// SignedTransfer is a transfer with its creator's signature over the
// transfer digest.
type SignedTransfer struct {
	Transfer  Transfer `json:"transfer"`
	Signature string   `json:"signature"`
}

// NewTransfer builds a transfer for the given job on the given chain.
func NewTransfer(chainID string, job types.SendJob, memo string) *Transfer {
	return &Transfer{
		ChainID:      chainID,
		Sender:       job.Sender.Address,
		SenderPubKey: hex.EncodeToString(job.Sender.PubKey),
		Recipient:    job.Recipient,
		Amount:       job.Amount,
		GasPrice:     job.GasPrice,
		GasLimit:     job.GasLimit,
		Memo:         memo,
		CreatedAt:    time.Now().UnixNano(),
	}
}

// Digest returns the sha256 over the canonical encoding of the
// transfer. The JSON field order is fixed by the struct definition,
// which keeps the encoding deterministic.
func (t *Transfer) Digest() ([]byte, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode transfer: %w", err)
	}
	digest := sha256.Sum256(encoded)
	return digest[:], nil
}

// Hash returns the transaction hash of the transfer, which is the hex
// encoded digest.
func (t *Transfer) Hash() (TxHash, error) {
	digest, err := t.Digest()
	if err != nil {
		return "", err
	}
	return TxHash(hex.EncodeToString(digest)), nil
}

// Sign signs the transfer with the job sender's key.
func (t *Transfer) Sign(signer Signer, sender types.Identity) (*SignedTransfer, error) {
	digest, err := t.Digest()
	if err != nil {
		return nil, err
	}
	sig, err := signer.SignDigest(sender, digest)
	if err != nil {
		return nil, fmt.Errorf("sign transfer: %w", err)
	}
	return &SignedTransfer{
		Transfer:  *t,
		Signature: hex.EncodeToString(sig),
	}, nil
}
