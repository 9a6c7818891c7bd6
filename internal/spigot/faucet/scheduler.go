package faucet

import (
	"context"
	"time"

	"github.com/spigot/internal/spigot/chain"
	"github.com/spigot/internal/spigot/types"
)

// Scheduler runs the snapshot-plan-execute sequence once at startup and
// then on a fixed interval. Each pass is independent and best-effort: a
// failed job is logged and the batch moves on to the next one, so a
// single bad transfer cannot starve the rest of the pool.
type Scheduler struct {
	client     chain.Client
	executor   *Executor
	policy     *Policy
	identities []types.Identity
	interval   time.Duration
}

// NewScheduler wires a refill scheduler for the given identity pool.
// identities must be holder-first.
func NewScheduler(client chain.Client, executor *Executor, policy *Policy, identities []types.Identity, interval time.Duration) *Scheduler {
	return &Scheduler{
		client:     client,
		executor:   executor,
		policy:     policy,
		identities: identities,
		interval:   interval,
	}
}

// Run executes one synchronous pass, then re-runs on every tick until
// the context is cancelled. In-flight jobs finish their confirmation
// wait (or hit its timeout) before Run returns.
func (s *Scheduler) Run(ctx context.Context) {
	if err := s.RefillPass(ctx); err != nil {
		fclogger().Errorw("Initial refill pass failed", "err", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fclogger().Info("Refill scheduler stopped")
			return
		case <-ticker.C:
			if err := s.RefillPass(ctx); err != nil {
				fclogger().Errorw("Refill pass failed", "err", err)
			}
		}
	}
}

// RefillPass fetches a fresh snapshot, plans the refill jobs and
// executes them strictly sequentially. The holder is the sole sender of
// every refill job, so job N+1 must not start before job N's
// confirmation is observed.
//
// Per-job failures are logged and skipped; RefillPass only returns an
// error when the snapshot itself cannot be taken.
func (s *Scheduler) RefillPass(ctx context.Context) error {
	accounts, err := FetchAccounts(ctx, s.client, s.identities)
	if err != nil {
		return err
	}
	LogAccountsState(accounts)

	jobs := Plan(s.policy, s.identities[0], accounts[0], accounts[1:])
	if len(jobs) == 0 {
		fclogger().Info("Nothing to refill")
		refillPassesTotal.Inc()
		return nil
	}

	for _, job := range jobs {
		refillJobsTotal.Inc()
		fclogger().Infow("Refilling distributor",
			"ticker", job.Ticker,
			"recipient", job.Recipient,
			"amount", job.Amount.String(),
		)
		if err := s.executor.Execute(ctx, job); err != nil {
			fclogger().Errorw("Refill job failed",
				"ticker", job.Ticker,
				"recipient", job.Recipient,
				"err", err,
			)
		}
	}

	fclogger().Info("Done refilling accounts")
	refillPassesTotal.Inc()
	return nil
}
