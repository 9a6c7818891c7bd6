package faucet

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigot/internal/spigot/types"
)

func TestCreditAmountDefaults(t *testing.T) {
	policy := testPolicy(0, nil)

	assert.Equal(t, "10", policy.CreditAmount("TOKENZ").Quantity.String())
	assert.Equal(t, "10", policy.CreditAmount("TRASH").Quantity.String())
}

func TestCreditAmountScaling(t *testing.T) {
	policy := testPolicy(9, nil)

	amount := policy.CreditAmount("CASH")
	assert.Equal(t, "10000000000", amount.Quantity.String())
	assert.Equal(t, int32(9), amount.FractionalDigits)
	assert.Equal(t, types.TokenTicker("CASH"), amount.Ticker)
}

func TestCreditAmountOverride(t *testing.T) {
	policy := testPolicy(0, map[string]int64{"WTF": 22})

	assert.Equal(t, "22", policy.CreditAmount("WTF").Quantity.String())
	// other tickers keep the default
	assert.Equal(t, "10", policy.CreditAmount("CASH").Quantity.String())
}

func TestRefillAmountIsCreditTimesFactor(t *testing.T) {
	policy := testPolicy(0, nil)

	credit := policy.CreditAmount("CASH").Quantity
	refill := policy.RefillAmount("CASH").Quantity
	expected := new(big.Int).Mul(credit, big.NewInt(20))
	assert.Zero(t, refill.Cmp(expected))
	assert.Equal(t, "200", refill.String())
}

// 18 decimal places must not lose precision.
func TestRefillAmountLargeDenomination(t *testing.T) {
	policy := testPolicy(18, nil)

	assert.Equal(t, "200000000000000000000", policy.RefillAmount("CASH").Quantity.String())
	assert.Equal(t, "80000000000000000000", policy.RefillThreshold("CASH").Quantity.String())
}

func TestRefillThreshold(t *testing.T) {
	policy := testPolicy(0, nil)
	assert.Equal(t, "80", policy.RefillThreshold("CASH").Quantity.String())
}

func TestNeedsRefill(t *testing.T) {
	policy := testPolicy(0, nil)

	below := types.Account{Address: "a", Balance: coins(map[types.TokenTicker]int64{"CASH": 79}, 0)}
	atThreshold := types.Account{Address: "b", Balance: coins(map[types.TokenTicker]int64{"CASH": 80}, 0)}
	above := types.Account{Address: "c", Balance: coins(map[types.TokenTicker]int64{"CASH": 81}, 0)}
	empty := types.Account{Address: "d"}

	assert.True(t, policy.NeedsRefill(below, "CASH"))
	assert.False(t, policy.NeedsRefill(atThreshold, "CASH"), "balance exactly at threshold is not refilled")
	assert.False(t, policy.NeedsRefill(above, "CASH"))
	assert.True(t, policy.NeedsRefill(empty, "CASH"))
}

func TestAvailableTokens(t *testing.T) {
	empty := types.Account{Address: "a"}
	assert.Empty(t, AvailableTokens(empty))

	one := types.Account{Address: "b", Balance: coins(map[types.TokenTicker]int64{"CASH": 1}, 9)}
	assert.Equal(t, []types.TokenTicker{"CASH"}, AvailableTokens(one))

	two := types.Account{Address: "c", Balance: coins(map[types.TokenTicker]int64{"CASH": 1, "TRASH": 1}, 9)}
	assert.Equal(t, []types.TokenTicker{"CASH", "TRASH"}, AvailableTokens(two))
}
