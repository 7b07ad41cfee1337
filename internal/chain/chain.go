// Package chain implements the validation and ledger core: the append-only
// block sequence, the pending transaction pool, replay-derived balances,
// block validation and minable block assembly.
package chain

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/models"
)

// Chain owns the aggregate {blocks, pending} state. One mutex guards both
// structures together: validation rules cross-reference them, so partial
// visibility of an in-progress append or admission would break the chain
// invariants.
type Chain struct {
	mu      sync.RWMutex
	policy  Policy
	blocks  []models.Block
	pending []models.Transaction
}

// New creates a chain containing only the genesis block.
func New(policy Policy) *Chain {
	c := &Chain{policy: policy}
	c.AddBlock(GenesisBlock())
	return c
}

// NewFromBlocks rebuilds a chain by re-validating a previously accepted
// block sequence, genesis first. Any rejected block means the stored chain
// is corrupt, which is an integration fault, not a validation outcome.
func NewFromBlocks(policy Policy, blocks []models.Block) (*Chain, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no blocks to restore")
	}
	if blocks[0].Index != 0 {
		return nil, fmt.Errorf("stored chain starts at block %d, not genesis", blocks[0].Index)
	}

	c := &Chain{policy: policy}
	for _, b := range blocks {
		if !c.AddBlock(b) {
			return nil, fmt.Errorf("stored block %d failed validation", b.Index)
		}
	}
	return c, nil
}

// Policy returns the economic parameters the chain was created with.
func (c *Chain) Policy() Policy {
	return c.policy
}

// Height returns the index of the latest block.
func (c *Chain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[len(c.blocks)-1].Index
}

// LatestBlock returns the last block of the chain.
func (c *Chain) LatestBlock() models.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[len(c.blocks)-1]
}

// BlockByIndex returns the block at the given position, or false if the
// chain is shorter.
func (c *Chain) BlockByIndex(index uint64) (models.Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index >= uint64(len(c.blocks)) {
		return models.Block{}, false
	}
	return c.blocks[index], true
}

// Blocks returns a copy of the confirmed block sequence.
func (c *Chain) Blocks() []models.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// PendingTransactions returns a copy of the pending pool in arrival order.
func (c *Chain) PendingTransactions() []models.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Transaction, len(c.pending))
	copy(out, c.pending)
	return out
}

// AddBlock validates the block against the current chain state and appends
// it on success. Rejections are logged and reported as false; they never
// abort the caller.
func (c *Chain) AddBlock(block models.Block) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.validateBlock(block); err != nil {
		log.Printf("[CHAIN] validation error (block %d): %v", block.Index, err)
		return false
	}
	c.blocks = append(c.blocks, block)
	return true
}

// ValidateBlock checks a block against the current chain state without
// appending it.
func (c *Chain) ValidateBlock(block models.Block) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validateBlock(block) == nil
}

// Balance derives the confirmed balance of an address by replaying every
// confirmed transaction in chain order. Recomputed from scratch on each
// call; see PendingBalance for the pool-adjusted figure.
func (c *Chain) Balance(address string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.balance(address)
}

// PendingBalance starts from the confirmed balance and applies every
// pending transaction in pool order.
func (c *Chain) PendingBalance(address string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	balance := c.balance(address)
	for _, t := range c.pending {
		if t.Source == address {
			balance -= int64(t.Amount + t.Fee)
		}
		if t.Destination == address {
			balance += int64(t.Amount)
		}
	}
	return balance
}

// balance assumes the caller holds at least a read lock.
func (c *Chain) balance(address string) int64 {
	var balance int64
	for _, b := range c.blocks {
		for _, t := range b.Transactions {
			if t.Source == address {
				balance -= int64(t.Amount + t.Fee)
			}
			if t.Destination == address {
				balance += int64(t.Amount)
			}
		}
	}
	return balance
}

// confirmedBlockIndex returns the index of the block containing the given
// transaction hash, if any. Assumes the caller holds at least a read lock.
func (c *Chain) confirmedBlockIndex(txHash string) (uint64, bool) {
	for _, b := range c.blocks {
		for _, t := range b.Transactions {
			if t.TxHash == txHash {
				return b.Index, true
			}
		}
	}
	return 0, false
}

// PushPendingTransaction admits a transaction into the pending pool.
// Duplicates, replays of confirmed transactions, bad signatures, amount/fee
// sums that wrap uint64 and spends beyond the confirmed balance are
// rejected, logged and reported as false.
//
// The overspend check runs against the confirmed balance, not the
// pool-adjusted one: several pending transactions from one source can each
// pass individually while collectively overspending. That matches the
// original protocol behavior and is kept as-is; callers wanting a stricter
// view can consult PendingBalance.
func (c *Chain) PushPendingTransaction(t models.Transaction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.pending {
		if p.TxHash == t.TxHash {
			log.Printf("[CHAIN] transaction not valid, duplicate transaction detected: %s", t.TxHash)
			return false
		}
	}
	if _, ok := c.confirmedBlockIndex(t.TxHash); ok {
		log.Printf("[CHAIN] transaction not valid, replay transaction detected: %s", t.TxHash)
		return false
	}
	if !crypto.Verify(t) {
		log.Printf("[CHAIN] transaction not valid, invalid transaction signature: %s", t.TxHash)
		return false
	}
	// A wrapped sum would compare as a tiny spend against the balance.
	if t.Amount > math.MaxUint64-t.Fee {
		log.Printf("[CHAIN] transaction not valid, amount plus fee overflows: %s", t.TxHash)
		return false
	}
	balance := c.balance(t.Source)
	if balance < 0 || t.Amount+t.Fee > uint64(balance) {
		log.Printf("[CHAIN] transaction not valid, insufficient funds: %s", t.TxHash)
		return false
	}

	c.pending = append(c.pending, t)
	return true
}

// RemovePendingTransaction removes the pending transaction with the given
// hash and reports whether a removal occurred. Mined transactions are not
// purged automatically on block acceptance; the caller drives removal.
func (c *Chain) RemovePendingTransaction(txHash string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, t := range c.pending {
		if t.TxHash == txHash {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}
