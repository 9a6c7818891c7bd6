package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spigot/internal/spigot/chain"
	"github.com/spigot/internal/spigot/config"
	"github.com/spigot/internal/spigot/faucet"
	"github.com/spigot/internal/spigot/keyring"
	"github.com/spigot/internal/spigot/logger"
	"github.com/spigot/internal/spigot/network"
	"github.com/spigot/internal/spigot/types"
)

// app is the assembled faucet: configuration, keys, chain connection
// and the policy derived from the chain's fractional digits.
type app struct {
	cfg             *config.Config
	kr              *keyring.Keyring
	client          *chain.RPCClient
	policy          *faucet.Policy
	executor        *faucet.Executor
	availableTokens []types.TokenTicker
	nodeURL         string
}

func bootstrap(ctx context.Context, nodeURL string) (*app, error) {
	cfg := config.FromEnv()
	kr, err := openKeyring(cfg)
	if err != nil {
		return nil, err
	}

	client, err := chain.Connect(ctx, nodeURL)
	if err != nil {
		return nil, err
	}
	info := client.Info()

	policy := faucet.NewPolicy(cfg, info.FractionalDigits)
	executor := faucet.NewExecutor(client, kr, cfg.Memo)

	// The token menu is fixed at startup: only tokens the holder holds
	// right now can ever be dispensed by this process.
	holder, err := faucet.FetchAccounts(ctx, client, kr.Identities()[:1])
	if err != nil {
		return nil, err
	}
	available := faucet.AvailableTokens(holder[0])
	logger.Named("main").Infow("Faucet assembled",
		"chainId", info.ChainID,
		"holder", kr.Holder().Address,
		"distributors", len(kr.Distributors()),
		"availableTokens", available,
	)

	return &app{
		cfg:             cfg,
		kr:              kr,
		client:          client,
		policy:          policy,
		executor:        executor,
		availableTokens: available,
		nodeURL:         nodeURL,
	}, nil
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <node-url>",
		Short: "Serve the faucet API and keep distributors refilled",
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
			go scheduler.Run(ctx)

			server := network.NewServer(a.cfg, a.client, a.policy, a.executor,
				a.kr.Identities(), a.nodeURL, a.availableTokens)
			if err := server.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Named("main").Info("Shutdown complete")
			return nil
		},
	}
}
