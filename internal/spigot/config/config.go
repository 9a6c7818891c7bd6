// Package config loads the process-wide faucet configuration from the
// environment. The configuration is read once at startup and never
// mutated afterwards.
//
// Malformed numeric values fall back silently to their defaults. This
// is a deliberate policy, not an oversight: a faucet with a garbled
// override keeps dispensing at default rates instead of crashing.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultCoinType is the SLIP-0044 testnet coin type.
	DefaultCoinType = uint32(1)

	DefaultInstance    = uint32(0)
	DefaultConcurrency = 5
	DefaultPort        = 8000

	DefaultRefillFactor    = int64(20)
	DefaultThresholdFactor = int64(8)
	DefaultRefillInterval  = 60 * time.Second

	DefaultAddressPrefix = "tspig"
	DefaultMemo          = "Have fun with your testnet tokens"

	creditAmountEnvPrefix = "FAUCET_CREDIT_AMOUNT_"
)

// Config is the process-wide faucet configuration.
type Config struct {
	// CoinType is the SLIP-0044 coin type used in the derivation path.
	CoinType uint32
	// Instance separates multiple faucet deployments sharing one
	// derivation namespace.
	Instance uint32
	// Concurrency is the distributor pool size N. The faucet manages
	// N+1 identities: one holder plus N distributors.
	Concurrency int
	// Port is the HTTP listen port.
	Port int
	// Mnemonic is the base secret all identities derive from. Empty
	// when the profile is expected to come from the keystore file.
	Mnemonic string
	// AddressPrefix is the bech32 human-readable prefix of the chain.
	AddressPrefix string
	// Memo is attached to every outgoing transfer.
	Memo string
	// CreditAmounts holds per-ticker whole-number overrides of the
	// dispensed amount, keyed by ticker symbol.
	CreditAmounts map[string]int64
	// RefillFactor scales the credit amount up to the refill amount.
	RefillFactor int64
	// ThresholdFactor scales the credit amount up to the balance level
	// below which a distributor is topped up.
	ThresholdFactor int64
	// RefillInterval is the period of the background refill pass.
	RefillInterval time.Duration
	// LogLevel configures the zap logger.
	LogLevel string
}

// FromEnv reads the configuration from FAUCET_* environment variables.
func FromEnv() *Config {
	cfg := &Config{
		CoinType:        envUint32("FAUCET_COIN_TYPE", DefaultCoinType),
		Instance:        envUint32("FAUCET_INSTANCE", DefaultInstance),
		Concurrency:     envInt("FAUCET_CONCURRENCY", DefaultConcurrency),
		Port:            envInt("FAUCET_PORT", DefaultPort),
		Mnemonic:        os.Getenv("FAUCET_MNEMONIC"),
		AddressPrefix:   envString("FAUCET_ADDRESS_PREFIX", DefaultAddressPrefix),
		Memo:            envString("FAUCET_MEMO", DefaultMemo),
		CreditAmounts:   creditAmountsFromEnv(os.Environ()),
		RefillFactor:    envInt64("FAUCET_REFILL_FACTOR", DefaultRefillFactor),
		ThresholdFactor: envInt64("FAUCET_REFILL_THRESHOLD", DefaultThresholdFactor),
		RefillInterval:  envSeconds("FAUCET_REFILL_INTERVAL", DefaultRefillInterval),
		LogLevel:        envString("FAUCET_LOG_LEVEL", "info"),
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = DefaultConcurrency
	}
	return cfg
}

// creditAmountsFromEnv collects FAUCET_CREDIT_AMOUNT_<TICKER> overrides
// from an environ-style list. Entries that do not parse as a positive
// integer are dropped, which leaves the default in effect.
func creditAmountsFromEnv(environ []string) map[string]int64 {
	amounts := make(map[string]int64)
	for _, entry := range environ {
		if !strings.HasPrefix(entry, creditAmountEnvPrefix) {
			continue
		}
		rest := strings.TrimPrefix(entry, creditAmountEnvPrefix)
		ticker, value, found := strings.Cut(rest, "=")
		if !found || ticker == "" {
			continue
		}
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			continue
		}
		amounts[ticker] = parsed
	}
	return amounts
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envInt64(name string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(name), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envUint32(name string, fallback uint32) uint32 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return uint32(v)
}

func envSeconds(name string, fallback time.Duration) time.Duration {
	v, err := strconv.ParseInt(os.Getenv(name), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Second
}
