// Package network exposes the faucet over HTTP: the credit endpoint,
// the status endpoints and the prometheus metrics endpoint.
package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigot/internal/spigot/chain"
	"github.com/spigot/internal/spigot/config"
	"github.com/spigot/internal/spigot/faucet"
	"github.com/spigot/internal/spigot/logger"
	"github.com/spigot/internal/spigot/types"
)

func netlogger() *zap.SugaredLogger {
	return logger.Named("network")
}

const shutdownGrace = 5 * time.Second

// Server serves the faucet HTTP API. Available tokens are determined
// once from the holder balance at startup; a token the holder does not
// hold can never be dispensed, so the list is fixed for the process
// lifetime.
type Server struct {
	client          chain.Client
	policy          *faucet.Policy
	dispatcher      *faucet.Dispatcher
	executor        *faucet.Executor
	identities      []types.Identity
	hrp             string
	nodeURL         string
	port            int
	chainTokens     []types.TokenTicker
	availableTokens []types.TokenTicker
}

// NewServer wires the HTTP boundary. identities[0] is the holder; the
// rest are the distributor pool credit requests rotate over.
func NewServer(cfg *config.Config, client chain.Client, policy *faucet.Policy, executor *faucet.Executor, identities []types.Identity, nodeURL string, availableTokens []types.TokenTicker) *Server {
	return &Server{
		client:          client,
		policy:          policy,
		dispatcher:      &faucet.Dispatcher{},
		executor:        executor,
		identities:      identities,
		hrp:             cfg.AddressPrefix,
		nodeURL:         nodeURL,
		port:            cfg.Port,
		chainTokens:     client.Info().TokenTickers(),
		availableTokens: availableTokens,
	}
}

// Handler builds the route table. Unregistered paths get the stock 404.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/credit", s.handleCredit)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/healthz", s.handleStatus)
	mux.Handle("/metrics", promhttp.Handler())
	return countRequests(mux)
}

// Run serves the API until the context is cancelled, then drains
// in-flight requests within the shutdown grace period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		netlogger().Infof("Listening on :%d", s.port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

type statusResponse struct {
	Status          string              `json:"status"`
	NodeUrl         string              `json:"nodeUrl"`
	ChainID         string              `json:"chainId"`
	ChainTokens     []types.TokenTicker `json:"chainTokens"`
	AvailableTokens []types.TokenTicker `json:"availableTokens"`
	Holder          types.Account       `json:"holder"`
	Distributors    []types.Account     `json:"distributors"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	accounts, err := faucet.FetchAccounts(r.Context(), s.client, s.identities)
	if err != nil {
		netlogger().Warnf("Status snapshot failed: %v", err)
		writeError(w, NewInternalError(http.StatusInternalServerError, err.Error()))
		return
	}
	resp := statusResponse{
		Status:          "ok",
		NodeUrl:         s.nodeURL,
		ChainID:         s.client.Info().ChainID,
		ChainTokens:     s.chainTokens,
		AvailableTokens: s.availableTokens,
		Holder:          accounts[0],
		Distributors:    accounts[1:],
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		netlogger().Warnf("Encoding status response failed: %v", err)
	}
}

// writeError sends the error to the client. Unexposed messages are
// replaced with the generic status text and kept to the logs.
func writeError(w http.ResponseWriter, err *HttpError) {
	message := err.Message
	if !err.Expose {
		message = http.StatusText(err.Status)
	}
	http.Error(w, message, err.Status)
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsTotal.Inc()
		next.ServeHTTP(w, r)
	})
}
