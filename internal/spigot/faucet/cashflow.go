// Package faucet implements the faucet core: amount policy, balance
// snapshots, refill planning, sender rotation, transfer execution and
// the periodic refill scheduler.
package faucet

import (
	"math/big"

	"github.com/spigot/internal/spigot/config"
	"github.com/spigot/internal/spigot/types"
)

// defaultCreditBase is the whole-number amount of tokens dispensed per
// credit request when no per-ticker override is configured.
const defaultCreditBase = int64(10)

// Policy computes credit, refill and refill-threshold amounts per token
// ticker. It is pure configuration arithmetic; chain state never enters
// here. All quantities are arbitrary-precision integers, so factor
// application is exact.
type Policy struct {
	fractionalDigits int32
	creditBase       map[string]int64
	refillFactor     int64
	thresholdFactor  int64
}

// NewPolicy builds the amount policy from the process configuration.
// fractionalDigits is the chain-wide scale reported by the connected
// node and is fixed for the process lifetime.
func NewPolicy(cfg *config.Config, fractionalDigits int32) *Policy {
	return &Policy{
		fractionalDigits: fractionalDigits,
		creditBase:       cfg.CreditAmounts,
		refillFactor:     cfg.RefillFactor,
		thresholdFactor:  cfg.ThresholdFactor,
	}
}

// FractionalDigits returns the chain-wide scale the policy operates on.
func (p *Policy) FractionalDigits() int32 {
	return p.fractionalDigits
}

// CreditAmount is the amount sent to a user per credit request.
func (p *Policy) CreditAmount(ticker types.TokenTicker) types.Amount {
	return p.creditTimes(ticker, 1)
}

// RefillAmount is the amount sent to an underfunded distributor.
func (p *Policy) RefillAmount(ticker types.TokenTicker) types.Amount {
	return p.creditTimes(ticker, p.refillFactor)
}

// RefillThreshold is the balance level below which a distributor gets
// topped up.
func (p *Policy) RefillThreshold(ticker types.TokenTicker) types.Amount {
	return p.creditTimes(ticker, p.thresholdFactor)
}

// NeedsRefill reports whether the distributor account's balance of the
// token is strictly below the refill threshold. A balance exactly at
// the threshold does not trigger a refill.
func (p *Policy) NeedsRefill(account types.Account, ticker types.TokenTicker) bool {
	balance := account.BalanceOf(ticker)
	threshold := p.RefillThreshold(ticker).Quantity
	return balance.Cmp(threshold) < 0
}

func (p *Policy) creditTimes(ticker types.TokenTicker, factor int64) types.Amount {
	base, ok := p.creditBase[string(ticker)]
	if !ok {
		base = defaultCreditBase
	}
	quantity := big.NewInt(base)
	quantity.Mul(quantity, big.NewInt(factor))
	quantity.Mul(quantity, types.Pow10(p.fractionalDigits))
	return types.Amount{
		Quantity:         quantity,
		FractionalDigits: p.fractionalDigits,
		Ticker:           ticker,
	}
}

// AvailableTokens lists the tickers the holder account actually holds.
// A token the holder never holds can never be distributed or refilled.
func AvailableTokens(holder types.Account) []types.TokenTicker {
	tickers := make([]types.TokenTicker, 0, len(holder.Balance))
	for _, coin := range holder.Balance {
		tickers = append(tickers, coin.Ticker)
	}
	return tickers
}
