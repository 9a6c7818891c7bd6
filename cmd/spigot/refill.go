package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spigot/internal/spigot/faucet"
)

// newRefillCmd runs a single refill pass and exits. Useful from cron or
// for topping up the pool before the service goes live.
func newRefillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refill <node-url>",
		Short: "Top up underfunded distributors once and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, args[0])
			if err != nil {
				return err
			}

			scheduler := faucet.NewScheduler(a.client, a.executor, a.policy,
				a.kr.Identities(), a.cfg.RefillInterval)
			return scheduler.RefillPass(ctx)
		},
	}
}
