package faucet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigot/internal/spigot/types"
)

// Holder holds 100 CASH at 0 fractional digits, three distributors all
// at zero. Threshold factor 8 and credit 10 give a threshold of 80, so
// every distributor gets a refill of 200 CASH, in index order.
func TestPlanRefillsAllEmptyDistributors(t *testing.T) {
	policy := testPolicy(0, nil)
	holder := testIdentity(0)
	holderAccount := types.Account{
		Address: holder.Address,
		Balance: coins(map[types.TokenTicker]int64{"CASH": 100}, 0),
	}
	distributors := []types.Account{
		{Address: testAddress(1)},
		{Address: testAddress(2)},
		{Address: testAddress(3)},
	}

	jobs := Plan(policy, holder, holderAccount, distributors)

	require.Len(t, jobs, 3)
	for i, job := range jobs {
		assert.Equal(t, holder, job.Sender)
		assert.Equal(t, distributors[i].Address, job.Recipient)
		assert.Equal(t, types.TokenTicker("CASH"), job.Ticker)
		assert.Equal(t, "200", job.Amount.Quantity.String())
	}
}

func TestPlanEmptyHolderProducesNoJobs(t *testing.T) {
	policy := testPolicy(0, nil)
	holder := testIdentity(0)
	holderAccount := types.Account{Address: holder.Address}
	distributors := []types.Account{{Address: testAddress(1)}}

	jobs := Plan(policy, holder, holderAccount, distributors)
	assert.Empty(t, jobs)
}

func TestPlanSkipsFundedDistributors(t *testing.T) {
	policy := testPolicy(0, nil)
	holder := testIdentity(0)
	holderAccount := types.Account{
		Address: holder.Address,
		Balance: coins(map[types.TokenTicker]int64{"CASH": 1000}, 0),
	}
	distributors := []types.Account{
		{Address: testAddress(1), Balance: coins(map[types.TokenTicker]int64{"CASH": 80}, 0)},
		{Address: testAddress(2), Balance: coins(map[types.TokenTicker]int64{"CASH": 79}, 0)},
	}

	jobs := Plan(policy, holder, holderAccount, distributors)

	require.Len(t, jobs, 1)
	assert.Equal(t, testAddress(2), jobs[0].Recipient)
}

// A distributor above threshold for one token still gets refilled for
// another token it is short on.
func TestPlanPerTokenDecisions(t *testing.T) {
	policy := testPolicy(0, nil)
	holder := testIdentity(0)
	holderAccount := types.Account{
		Address: holder.Address,
		Balance: coins(map[types.TokenTicker]int64{"CASH": 1000, "TRASH": 1000}, 0),
	}
	distributors := []types.Account{
		{Address: testAddress(1), Balance: coins(map[types.TokenTicker]int64{"CASH": 500, "TRASH": 10}, 0)},
	}

	jobs := Plan(policy, holder, holderAccount, distributors)

	require.Len(t, jobs, 1)
	assert.Equal(t, types.TokenTicker("TRASH"), jobs[0].Ticker)
}

// Jobs come out grouped by ticker, distributors in index order inside
// each group.
func TestPlanOrdering(t *testing.T) {
	policy := testPolicy(0, nil)
	holder := testIdentity(0)
	holderAccount := types.Account{
		Address: holder.Address,
		Balance: coins(map[types.TokenTicker]int64{"CASH": 1000, "TRASH": 1000}, 0),
	}
	distributors := []types.Account{
		{Address: testAddress(1)},
		{Address: testAddress(2)},
	}

	jobs := Plan(policy, holder, holderAccount, distributors)

	require.Len(t, jobs, 4)
	assert.Equal(t, types.TokenTicker("CASH"), jobs[0].Ticker)
	assert.Equal(t, testAddress(1), jobs[0].Recipient)
	assert.Equal(t, types.TokenTicker("CASH"), jobs[1].Ticker)
	assert.Equal(t, testAddress(2), jobs[1].Recipient)
	assert.Equal(t, types.TokenTicker("TRASH"), jobs[2].Ticker)
	assert.Equal(t, testAddress(1), jobs[2].Recipient)
	assert.Equal(t, types.TokenTicker("TRASH"), jobs[3].Ticker)
	assert.Equal(t, testAddress(2), jobs[3].Recipient)
}
