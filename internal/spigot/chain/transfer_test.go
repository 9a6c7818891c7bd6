package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigot/internal/spigot/types"
)

type staticSigner struct {
	sig []byte
	err error
}

func (s *staticSigner) SignDigest(identity types.Identity, digest []byte) ([]byte, error) {
	return s.sig, s.err
}

func testJob() types.SendJob {
	return types.SendJob{
		Sender: types.Identity{
			Index:   1,
			PubKey:  []byte{0x02, 0x01},
			Address: "tspig1sender",
		},
		Recipient: "tspig1recipient",
		Ticker:    "CASH",
		Amount: types.Amount{
			Quantity:         big.NewInt(10000000000),
			FractionalDigits: 9,
			Ticker:           "CASH",
		},
	}
}

func TestTransferDigestIsDeterministic(t *testing.T) {
	tx := NewTransfer("spigot-testnet", testJob(), "memo")

	d1, err := tx.Digest()
	require.NoError(t, err)
	d2, err := tx.Digest()
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 32)
}

func TestTransfersDoNotCollide(t *testing.T) {
	a := NewTransfer("spigot-testnet", testJob(), "memo")
	b := NewTransfer("spigot-testnet", testJob(), "memo")
	b.CreatedAt = a.CreatedAt + 1

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestTransferSign(t *testing.T) {
	job := testJob()
	tx := NewTransfer("spigot-testnet", job, "memo")

	signed, err := tx.Sign(&staticSigner{sig: []byte{0xde, 0xad}}, job.Sender)
	require.NoError(t, err)
	assert.Equal(t, "dead", signed.Signature)
	assert.Equal(t, tx.Sender, signed.Transfer.Sender)
}

func TestTxErrorMessage(t *testing.T) {
	err := &TxError{Code: 5, Message: "insufficient funds"}
	assert.Equal(t, "sending tokens failed. Code: 5, message: insufficient funds", err.Error())
}

func TestInfoTokenTickers(t *testing.T) {
	info := Info{
		Tokens: []Token{{Ticker: "CASH"}, {Ticker: "TRASH"}},
	}
	assert.Equal(t, []types.TokenTicker{"CASH", "TRASH"}, info.TokenTickers())
}
