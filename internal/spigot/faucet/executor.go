package faucet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spigot/internal/spigot/chain"
	"github.com/spigot/internal/spigot/types"
)

// DefaultConfirmTimeout bounds the block-inclusion wait per transfer.
const DefaultConfirmTimeout = 90 * time.Second

// Executor submits one signed transfer per job and waits for its
// confirmation. It serializes submissions per sender identity: each
// account may have at most one unconfirmed transaction in flight, or
// the chain rejects the follow-up sequence number. Different senders
// execute concurrently.
type Executor struct {
	client         chain.Client
	signer         chain.Signer
	memo           string
	confirmTimeout time.Duration

	mu       sync.Mutex
	inFlight map[uint32]*sync.Mutex
}

// NewExecutor returns an executor sending through the given client and
// signing with the given signer.
func NewExecutor(client chain.Client, signer chain.Signer, memo string) *Executor {
	return &Executor{
		client:         client,
		signer:         signer,
		memo:           memo,
		confirmTimeout: DefaultConfirmTimeout,
		inFlight:       make(map[uint32]*sync.Mutex),
	}
}

// Execute turns the job into a chain transfer, submits it and blocks
// until the chain reports a terminal block status. Chain-reported
// failures and confirmation timeouts come back as errors; the executor
// never retries.
func (e *Executor) Execute(ctx context.Context, job types.SendJob) error {
	lock := e.senderLock(job.Sender.Index)
	lock.Lock()
	defer lock.Unlock()

	transferInFlight.Inc()
	defer transferInFlight.Dec()

	tx := chain.NewTransfer(e.client.Info().ChainID, job, e.memo)
	signed, err := tx.Sign(e.signer, job.Sender)
	if err != nil {
		transferFailuresTotal.Inc()
		return fmt.Errorf("sign job for %s: %w", job.Recipient, err)
	}

	hash, err := e.client.Submit(ctx, signed)
	if err != nil {
		transferFailuresTotal.Inc()
		return fmt.Errorf("submit job for %s: %w", job.Recipient, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, e.confirmTimeout)
	defer cancel()

	receipt, err := e.client.AwaitConfirmation(waitCtx, hash)
	if err != nil {
		transferFailuresTotal.Inc()
		return fmt.Errorf("confirm job for %s: %w", job.Recipient, err)
	}
	if receipt.Code != 0 {
		transferFailuresTotal.Inc()
		return &chain.TxError{Code: receipt.Code, Message: receipt.Log}
	}

	transfersTotal.Inc()
	fclogger().Infow("Transfer confirmed",
		"hash", hash,
		"height", receipt.Height,
		"sender", job.Sender.Address,
		"recipient", job.Recipient,
		"amount", job.Amount.String(),
	)
	return nil
}

func (e *Executor) senderLock(index uint32) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.inFlight[index]
	if !ok {
		lock = new(sync.Mutex)
		e.inFlight[index] = lock
	}
	return lock
}
