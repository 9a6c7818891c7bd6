package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spigot/internal/spigot/config"
	"github.com/spigot/internal/spigot/keyring"
)

// newInitCmd creates the encrypted profile keystore. The mnemonic comes
// from the command line, from FAUCET_MNEMONIC, or is freshly generated,
// in that order.
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [mnemonic words...]",
		Short: "Create the faucet profile keystore",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagPassword == "" {
				return fmt.Errorf("keystore password is required, set --password or FAUCET_PASSWORD")
			}
			cfg := config.FromEnv()

			mnemonic := strings.Join(args, " ")
			if mnemonic == "" {
				mnemonic = cfg.Mnemonic
			}
			generated := false
			if mnemonic == "" {
				fresh, err := keyring.GenerateMnemonic()
				if err != nil {
					return err
				}
				mnemonic = fresh
				generated = true
			}

			kr, err := keyring.FromMnemonic(mnemonic, cfg.AddressPrefix,
				cfg.CoinType, cfg.Instance, cfg.Concurrency)
			if err != nil {
				return err
			}

			profile := keyring.Profile{
				Mnemonic:    mnemonic,
				CoinType:    cfg.CoinType,
				Instance:    cfg.Instance,
				Concurrency: cfg.Concurrency,
				CreatedAt:   time.Now().UTC(),
			}
			if err := keyring.StoreProfile(flagKeystore, flagPassword, profile); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Keystore written to %s\n", flagKeystore)
			if generated {
				fmt.Fprintf(out, "Mnemonic: %s\n", mnemonic)
				fmt.Fprintln(out, "Write the mnemonic down. It cannot be recovered from the keystore without the password.")
			}
			fmt.Fprintf(out, "Holder address: %s\n", kr.Holder().Address)
			for _, d := range kr.Distributors() {
				fmt.Fprintf(out, "Distributor %d: %s\n", d.Index, d.Address)
			}
			return nil
		},
	}
}
