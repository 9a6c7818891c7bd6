// Package chain is the faucet's narrow boundary to the blockchain node.
// The faucet core depends only on the Client interface, which keeps the
// chain SDK swappable and the core testable with doubles.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/spigot/internal/spigot/types"
)

var (
	// ErrConfirmationTimeout marks a transfer whose inclusion was not
	// observed before the wait deadline. The transfer may still land on
	// chain later; the faucet treats it as failed.
	ErrConfirmationTimeout = errors.New("timed out waiting for block inclusion")
)

// TxHash identifies a submitted transaction.
type TxHash string

// Token describes one token type known to the chain.
type Token struct {
	Ticker types.TokenTicker `json:"tokenTicker"`
	Name   string            `json:"name,omitempty"`
}

// Info is the static chain description fetched once at connect time.
type Info struct {
	ChainID          string  `json:"chainId"`
	FractionalDigits int32   `json:"fractionalDigits"`
	Tokens           []Token `json:"tokens"`
}

// Receipt is the terminal block status of a transaction. Code zero
// means the transfer executed; any other code is a chain-reported
// failure.
type Receipt struct {
	Hash   TxHash `json:"hash"`
	Height int64  `json:"height"`
	Code   uint32 `json:"code"`
	Log    string `json:"log,omitempty"`
}

// TxError is a chain-reported transaction failure.
type TxError struct {
	Code    uint32
	Message string
}

func (e *TxError) Error() string {
	return fmt.Sprintf("sending tokens failed. Code: %d, message: %s", e.Code, e.Message)
}

// Client is the capability the faucet core needs from a chain node.
//
// GetAccount returns (nil, nil) for addresses the chain has never seen;
// callers synthesize an empty account in that case. Submit broadcasts a
// signed transfer and returns immediately with its hash.
// AwaitConfirmation blocks until the transaction reaches a terminal
// block status or the context expires.
type Client interface {
	Info() Info
	GetAccount(ctx context.Context, address types.Address) (*types.Account, error)
	Submit(ctx context.Context, tx *SignedTransfer) (TxHash, error)
	AwaitConfirmation(ctx context.Context, hash TxHash) (*Receipt, error)
}

// TokenTickers lists the ticker symbols of the chain's tokens.
func (i Info) TokenTickers() []types.TokenTicker {
	tickers := make([]types.TokenTicker, 0, len(i.Tokens))
	for _, token := range i.Tokens {
		tickers = append(tickers, token.Ticker)
	}
	return tickers
}
