package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Account is a read-only projection of chain state for one address.
// The balance holds one entry per token the address holds.
type Account struct {
	Address Address  `json:"address"`
	Balance []Amount `json:"balance"`
}

// BalanceOf returns the account's quantity of the given token, or zero
// when the account does not hold it.
func (a Account) BalanceOf(ticker TokenTicker) *big.Int {
	for _, coin := range a.Balance {
		if coin.Ticker == ticker {
			return coin.Quantity
		}
	}
	return big.NewInt(0)
}

// Identity is a public reference to one derived key pair. Index 0 is
// the holder; higher indices are distributors. Secrets stay in the
// keyring; the faucet core only ever sees this projection.
type Identity struct {
	Index   uint32
	PubKey  []byte
	Address Address
}

// SendJob is a single transfer of amount from sender to recipient.
// Jobs are created by the planner or the credit handler and consumed
// exactly once by the executor; they are never persisted.
type SendJob struct {
	Sender    Identity
	Recipient Address
	Ticker    TokenTicker
	Amount    Amount
	GasPrice  *Amount
	GasLimit  *Amount
}

// DebugAccount renders an account in a human-readable format that can
// change at any time.
func DebugAccount(account Account) string {
	coins := make([]string, 0, len(account.Balance))
	for _, coin := range account.Balance {
		coins = append(coins, coin.String())
	}
	return fmt.Sprintf("%s: [%s]", account.Address, strings.Join(coins, ", "))
}
