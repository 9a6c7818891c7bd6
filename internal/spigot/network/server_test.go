package network

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigot/internal/spigot/types"
)

func seedPoolAccounts(server *Server, client *fakeClient) {
	for i, identity := range server.identities {
		client.accounts[identity.Address] = &types.Account{
			Address: identity.Address,
			Balance: []types.Amount{{
				Quantity:         big.NewInt(int64(100 - 10*i)),
				FractionalDigits: 0,
				Ticker:           "CASH",
			}},
		}
	}
}

func TestStatusResponse(t *testing.T) {
	client := newFakeClient()
	server := testServer(t, client)
	seedPoolAccounts(server, client)

	for _, path := range []string{"/status", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp statusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "http://localhost:26657", resp.NodeUrl)
		assert.Equal(t, "spigot-testnet", resp.ChainID)
		assert.Equal(t, []types.TokenTicker{"CASH", "TRASH"}, resp.ChainTokens)
		assert.Equal(t, []types.TokenTicker{"CASH"}, resp.AvailableTokens)
		assert.Equal(t, server.identities[0].Address, resp.Holder.Address)
		require.Len(t, resp.Distributors, 2)
		assert.Equal(t, server.identities[1].Address, resp.Distributors[0].Address)
	}
}

func TestStatusSynthesizesUnknownAccounts(t *testing.T) {
	client := newFakeClient()
	server := testServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, server.identities[0].Address, resp.Holder.Address)
	assert.Empty(t, resp.Holder.Balance)
}

func TestStatusSnapshotFailureStaysUnexposed(t *testing.T) {
	client := newFakeClient()
	client.getAccountErr = assert.AnError
	server := testServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestUnknownPathIsNotFound(t *testing.T) {
	server := testServer(t, newFakeClient())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	server := testServer(t, newFakeClient())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "spigot_http_requests_total")
}
