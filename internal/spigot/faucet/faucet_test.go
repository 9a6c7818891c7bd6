package faucet

import (
	"context"
	"math/big"
	"sync"

	"github.com/spigot/internal/spigot/chain"
	"github.com/spigot/internal/spigot/config"
	"github.com/spigot/internal/spigot/types"
)

// fakeClient is a scripted chain.Client for core tests.
type fakeClient struct {
	mu            sync.Mutex
	info          chain.Info
	accounts      map[types.Address]*types.Account
	submitted     []chain.SignedTransfer
	receiptCodes  []uint32
	submitErr     error
	getAccountErr error
	blockConfirm  bool
}

var _ chain.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		info: chain.Info{
			ChainID:          "spigot-testnet",
			FractionalDigits: 0,
			Tokens:           []chain.Token{{Ticker: "CASH"}, {Ticker: "TRASH"}},
		},
		accounts: make(map[types.Address]*types.Account),
	}
}

func (f *fakeClient) Info() chain.Info {
	return f.info
}

func (f *fakeClient) GetAccount(ctx context.Context, address types.Address) (*types.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getAccountErr != nil {
		return nil, f.getAccountErr
	}
	return f.accounts[address], nil
}

func (f *fakeClient) Submit(ctx context.Context, tx *chain.SignedTransfer) (chain.TxHash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, *tx)
	return tx.Transfer.Hash()
}

func (f *fakeClient) AwaitConfirmation(ctx context.Context, hash chain.TxHash) (*chain.Receipt, error) {
	if f.blockConfirm {
		<-ctx.Done()
		return nil, chain.ErrConfirmationTimeout
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	code := uint32(0)
	if len(f.receiptCodes) > 0 {
		code = f.receiptCodes[0]
		f.receiptCodes = f.receiptCodes[1:]
	}
	receipt := &chain.Receipt{Hash: hash, Height: 1, Code: code}
	if code != 0 {
		receipt.Log = "scripted failure"
	}
	return receipt, nil
}

func (f *fakeClient) submittedTransfers() []chain.SignedTransfer {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]chain.SignedTransfer, len(f.submitted))
	copy(out, f.submitted)
	return out
}

type fakeSigner struct{}

func (fakeSigner) SignDigest(identity types.Identity, digest []byte) ([]byte, error) {
	return []byte{0x51, 0x60}, nil
}

func testPolicy(digits int32, overrides map[string]int64) *Policy {
	cfg := &config.Config{
		CreditAmounts:   overrides,
		RefillFactor:    config.DefaultRefillFactor,
		ThresholdFactor: config.DefaultThresholdFactor,
	}
	if cfg.CreditAmounts == nil {
		cfg.CreditAmounts = map[string]int64{}
	}
	return NewPolicy(cfg, digits)
}

func testIdentity(index uint32) types.Identity {
	return types.Identity{
		Index:   index,
		PubKey:  []byte{0x02, byte(index)},
		Address: testAddress(index),
	}
}

func testAddress(index uint32) types.Address {
	names := []types.Address{
		"tspig1holder",
		"tspig1distone",
		"tspig1disttwo",
		"tspig1distthree",
	}
	return names[index]
}

func coins(quantities map[types.TokenTicker]int64, digits int32) []types.Amount {
	out := make([]types.Amount, 0, len(quantities))
	for _, ticker := range []types.TokenTicker{"CASH", "TRASH"} {
		q, ok := quantities[ticker]
		if !ok {
			continue
		}
		out = append(out, types.Amount{
			Quantity:         big.NewInt(q),
			FractionalDigits: digits,
			Ticker:           ticker,
		})
	}
	return out
}
