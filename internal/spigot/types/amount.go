package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

// TokenTicker is the short symbol identifying a token type on a chain.
type TokenTicker string

var (
	ErrTickerMismatch = errors.New("amounts have different token tickers")
	ErrDigitsMismatch = errors.New("amounts have different fractional digits")
)

// Amount is a token quantity expressed in the token's smallest unit.
// Quantity is always a non-negative arbitrary-precision integer;
// FractionalDigits defines the scale. Two amounts are comparable only
// when ticker and fractional digits match.
type Amount struct {
	Quantity         *big.Int
	FractionalDigits int32
	Ticker           TokenTicker
}

type amountJSON struct {
	Quantity         string      `json:"quantity"`
	FractionalDigits int32       `json:"fractionalDigits"`
	Ticker           TokenTicker `json:"tokenTicker"`
}

func (a Amount) MarshalJSON() ([]byte, error) {
	q := a.Quantity
	if q == nil {
		q = big.NewInt(0)
	}
	return json.Marshal(amountJSON{
		Quantity:         q.String(),
		FractionalDigits: a.FractionalDigits,
		Ticker:           a.Ticker,
	})
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw amountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q, ok := new(big.Int).SetString(raw.Quantity, 10)
	if !ok {
		return fmt.Errorf("invalid amount quantity %q", raw.Quantity)
	}
	if q.Sign() < 0 {
		return fmt.Errorf("amount quantity %q is negative", raw.Quantity)
	}
	a.Quantity = q
	a.FractionalDigits = raw.FractionalDigits
	a.Ticker = raw.Ticker
	return nil
}

// Cmp compares a against b. It returns an error when the amounts are
// not comparable.
func (a Amount) Cmp(b Amount) (int, error) {
	if a.Ticker != b.Ticker {
		return 0, ErrTickerMismatch
	}
	if a.FractionalDigits != b.FractionalDigits {
		return 0, ErrDigitsMismatch
	}
	return a.Quantity.Cmp(b.Quantity), nil
}

// String renders the amount in a human-readable form that can change at
// any time.
func (a Amount) String() string {
	q := a.Quantity
	if q == nil {
		q = big.NewInt(0)
	}
	if a.FractionalDigits == 0 {
		return fmt.Sprintf("%s %s", q.String(), a.Ticker)
	}
	scale := Pow10(a.FractionalDigits)
	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(q, scale, frac)
	return fmt.Sprintf("%s.%0*s %s", whole.String(), int(a.FractionalDigits), frac.String(), a.Ticker)
}

// Pow10 returns 10^n as an arbitrary-precision integer.
func Pow10(n int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
