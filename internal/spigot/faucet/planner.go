package faucet

import (
	"github.com/spigot/internal/spigot/types"
)

// Plan compares the distributor balances against the policy thresholds
// and produces the transfer jobs needed to top them up from the holder.
//
// Jobs come out in ticker-then-distributor-index order, which is also
// the execution order. An empty result is a valid no-op outcome: either
// the holder holds nothing, or every distributor is at or above its
// threshold.
func Plan(policy *Policy, holder types.Identity, holderAccount types.Account, distributors []types.Account) []types.SendJob {
	jobs := make([]types.SendJob, 0)

	for _, ticker := range AvailableTokens(holderAccount) {
		refilled := 0
		for _, distributor := range distributors {
			if !policy.NeedsRefill(distributor, ticker) {
				continue
			}
			jobs = append(jobs, types.SendJob{
				Sender:    holder,
				Recipient: distributor.Address,
				Ticker:    ticker,
				Amount:    policy.RefillAmount(ticker),
			})
			refilled++
		}
		fclogger().Infow("Planned refills", "ticker", ticker, "count", refilled)
	}
	return jobs
}
