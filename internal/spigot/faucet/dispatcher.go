package faucet

import (
	"sync/atomic"

	"github.com/spigot/internal/spigot/types"
)

// Dispatcher rotates outgoing credit transfers across the distributor
// pool so no single account signs every concurrent request. The chain
// sequences transactions per account, so spreading senders avoids
// sequence contention.
type Dispatcher struct {
	counter atomic.Uint64
}

// SelectSender returns the next distributor in rotation. The counter
// starts at zero and is never reset, so the first call always selects
// the first distributor. Safe for concurrent use.
func (d *Dispatcher) SelectSender(distributors []types.Identity) types.Identity {
	count := d.counter.Add(1) - 1
	return distributors[count%uint64(len(distributors))]
}
