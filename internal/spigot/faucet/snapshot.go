package faucet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigot/internal/spigot/chain"
	"github.com/spigot/internal/spigot/logger"
	"github.com/spigot/internal/spigot/types"
)

func fclogger() *zap.SugaredLogger {
	return logger.Named("faucet")
}

// FetchAccounts queries the chain for the current balance of every
// identity, preserving holder-first ordering. Never-funded addresses
// come back as accounts with an empty balance; partial chain state is
// not an error.
func FetchAccounts(ctx context.Context, client chain.Client, identities []types.Identity) ([]types.Account, error) {
	accounts := make([]types.Account, 0, len(identities))
	for _, identity := range identities {
		account, err := client.GetAccount(ctx, identity.Address)
		if err != nil {
			return nil, fmt.Errorf("fetch account %d (%s): %w", identity.Index, identity.Address, err)
		}
		if account == nil {
			account = &types.Account{Address: identity.Address, Balance: []types.Amount{}}
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

// LogAccountsState logs the holder and distributor balances.
func LogAccountsState(accounts []types.Account) {
	if len(accounts) == 0 {
		return
	}
	fclogger().Infow("Holder", "account", types.DebugAccount(accounts[0]))
	for _, distributor := range accounts[1:] {
		fclogger().Infow("Distributor", "account", types.DebugAccount(distributor))
	}
}
