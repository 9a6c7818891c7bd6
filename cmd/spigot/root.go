package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spigot/internal/spigot/config"
	"github.com/spigot/internal/spigot/keyring"
	"github.com/spigot/internal/spigot/logger"
)

var (
	flagKeystore string
	flagPassword string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spigot",
		Short:         "Token faucet for testnets",
		Long:          "spigot dispenses testnet tokens over HTTP and keeps its distributor pool topped up from a holder account.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			_, err := logger.Init(logger.Config{Level: cfg.LogLevel, Console: true})
			return err
		},
	}

	root.PersistentFlags().StringVar(&flagKeystore, "keystore", "spigot.keystore",
		"path to the encrypted profile keystore")
	root.PersistentFlags().StringVar(&flagPassword, "password", os.Getenv("FAUCET_PASSWORD"),
		"keystore password (defaults to FAUCET_PASSWORD)")

	root.AddCommand(newInitCmd())
	root.AddCommand(newStartCmd())
	root.AddCommand(newRefillCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// openKeyring derives the key pool from the stored profile, or from the
// FAUCET_MNEMONIC environment when no keystore exists. The environment
// path supports ephemeral deployments that never touch disk.
func openKeyring(cfg *config.Config) (*keyring.Keyring, error) {
	profile, err := keyring.LoadProfile(flagKeystore, flagPassword)
	switch {
	case err == nil:
		return keyring.FromMnemonic(profile.Mnemonic, cfg.AddressPrefix,
			profile.CoinType, profile.Instance, profile.Concurrency)
	case errors.Is(err, keyring.ErrProfileNotFound):
		if cfg.Mnemonic == "" {
			return nil, fmt.Errorf("no keystore at %s and FAUCET_MNEMONIC is not set", flagKeystore)
		}
		return keyring.FromMnemonic(cfg.Mnemonic, cfg.AddressPrefix,
			cfg.CoinType, cfg.Instance, cfg.Concurrency)
	default:
		return nil, err
	}
}
