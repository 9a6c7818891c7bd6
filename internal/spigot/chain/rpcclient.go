package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/spigot/internal/spigot/logger"
	"github.com/spigot/internal/spigot/types"
)

func rpclogger() *zap.SugaredLogger {
	return logger.Named("chain")
}

var ErrNodeUnreachable = errors.New("node is unreachable")

const (
	defaultRequestTimeout = 15 * time.Second
	defaultPollInterval   = 2 * time.Second
)

// rpcRequest and rpcResponse are the JSON-RPC 2.0 wire format the node
// speaks.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int64         `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	ID      int64           `json:"id"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// RPCClient talks JSON-RPC over HTTP to a single chain node.
type RPCClient struct {
	baseURL      string
	httpClient   *http.Client
	info         Info
	pollInterval time.Duration
	nextID       atomic.Int64
}

var _ Client = (*RPCClient)(nil)

// Connect dials the node, fetches the chain description and returns a
// ready client. The first configured chain is the only chain.
func Connect(ctx context.Context, baseURL string) (*RPCClient, error) {
	c := &RPCClient{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: defaultRequestTimeout},
		pollInterval: defaultPollInterval,
	}

	var info Info
	if err := c.call(ctx, "chain.getInfo", nil, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNodeUnreachable, err)
	}
	c.info = info

	rpclogger().Infow("Connected to network",
		"nodeUrl", baseURL,
		"chainId", info.ChainID,
		"fractionalDigits", info.FractionalDigits,
	)
	return c, nil
}

// Info returns the chain description fetched at connect time.
func (c *RPCClient) Info() Info {
	return c.info
}

// GetAccount queries the node for the address's account state. It
// returns (nil, nil) when the chain has never seen the address.
func (c *RPCClient) GetAccount(ctx context.Context, address types.Address) (*types.Account, error) {
	var account *types.Account
	if err := c.call(ctx, "account.getState", []interface{}{string(address)}, &account); err != nil {
		return nil, fmt.Errorf("get account %s: %w", address, err)
	}
	return account, nil
}

// Submit broadcasts a signed transfer and returns its hash.
func (c *RPCClient) Submit(ctx context.Context, tx *SignedTransfer) (TxHash, error) {
	var hash TxHash
	if err := c.call(ctx, "tx.send", []interface{}{tx}, &hash); err != nil {
		return "", fmt.Errorf("submit transfer: %w", err)
	}
	return hash, nil
}

// AwaitConfirmation polls the node until the transaction reaches a
// terminal block status. The caller bounds the wait via ctx; expiry is
// reported as ErrConfirmationTimeout.
func (c *RPCClient) AwaitConfirmation(ctx context.Context, hash TxHash) (*Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var receipt *Receipt
		if err := c.call(ctx, "tx.getReceipt", []interface{}{string(hash)}, &receipt); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", ErrConfirmationTimeout, hash)
			}
			return nil, fmt.Errorf("poll receipt %s: %w", hash, err)
		}
		if receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrConfirmationTimeout, hash)
		case <-ticker.C:
		}
	}
}

func (c *RPCClient) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("node returned status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if result != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode result of %s: %w", method, err)
		}
	}
	return nil
}
