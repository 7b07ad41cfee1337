package chain

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/models"
)

// validateBlock decides whether a block may extend the chain. An index-0
// block must equal the pinned genesis block; every other block must pass,
// in order: proof-of-work, continuity with the latest block, and the
// transaction/reward rules. The first violated rule wins. Assumes the
// caller holds the lock; never mutates state.
func (c *Chain) validateBlock(block models.Block) error {
	if block.Index == 0 {
		return c.checkGenesisBlock(block)
	}
	if err := c.checkHashPattern(block); err != nil {
		return err
	}
	if err := c.checkIndexAndPreviousHash(block); err != nil {
		return err
	}
	return c.checkTransactionsAndReward(block)
}

// checkGenesisBlock requires structural equality with the pinned genesis
// block, every field included.
func (c *Chain) checkGenesisBlock(block models.Block) error {
	if !reflect.DeepEqual(block, GenesisBlock()) {
		return &GenesisMismatchError{Index: block.Index, Message: fmt.Sprintf("block hash %s", block.CurrentHash)}
	}
	return nil
}

// checkHashPattern enforces the proof-of-work predicate: the first d
// characters of the block hash must all be zero, where d is the active
// difficulty for this index.
func (c *Chain) checkHashPattern(block models.Block) error {
	difficulty := c.policy.HashDifficulty(block.Index)
	prefix := block.CurrentHash
	if len(prefix) > difficulty {
		prefix = prefix[:difficulty]
	}
	if strings.Count(prefix, "0") < difficulty {
		return &InvalidHashError{Index: block.Index, Message: fmt.Sprintf("incompatible block hash %s", block.CurrentHash)}
	}
	return nil
}

// checkIndexAndPreviousHash enforces chain continuity against the current
// latest block.
func (c *Chain) checkIndexAndPreviousHash(block models.Block) error {
	if len(c.blocks) == 0 {
		return &ChainContinuityError{Index: block.Index, Message: "chain has no genesis block"}
	}
	latest := c.blocks[len(c.blocks)-1]
	if latest.Index != block.Index-1 {
		return &ChainContinuityError{Index: block.Index, Message: fmt.Sprintf("incompatible block index %d", block.Index-1)}
	}
	if latest.CurrentHash != block.PreviousHash {
		return &ChainContinuityError{Index: block.Index, Message: fmt.Sprintf("incompatible previous hash %s", block.PreviousHash)}
	}
	return nil
}

// checkTransactionsAndReward validates every non-reward transaction for
// replay, signature and funds, accumulating per-source debits so a source
// appearing several times in one block cannot overspend its pre-block
// balance in aggregate. The last transaction must be the coinbase reward
// for exactly baseReward(index) plus the block's fees.
func (c *Chain) checkTransactionsAndReward(block models.Block) error {
	rewardAmount := c.policy.BaseReward(block.Index)
	payers := make(map[string]uint64)

	for _, t := range block.Transactions[:len(block.Transactions)-1] {
		if _, ok := c.confirmedBlockIndex(t.TxHash); ok {
			return &InvalidTransactionsError{Index: block.Index, Message: "duplicate transaction detected"}
		}
		if !crypto.Verify(t) {
			return &InvalidTransactionsError{Index: block.Index, Message: "invalid transaction signature"}
		}
		// Sums that wrap uint64 would compare as tiny spends below.
		if t.Amount > math.MaxUint64-t.Fee {
			return &InvalidTransactionsError{Index: block.Index, Message: "transaction amount overflow"}
		}
		debit := t.Amount + t.Fee
		if payers[t.Source] > math.MaxUint64-debit {
			return &InvalidTransactionsError{Index: block.Index, Message: "transaction amount overflow"}
		}
		payers[t.Source] += debit
		rewardAmount += t.Fee
	}

	for source, spent := range payers {
		balance := c.balance(source)
		if balance < 0 || spent > uint64(balance) {
			return &InvalidTransactionsError{Index: block.Index, Message: "insufficient funds"}
		}
	}

	reward := block.Transactions[len(block.Transactions)-1]
	if reward.Amount != rewardAmount || reward.Source != models.CoinbaseAddress {
		return &InvalidTransactionsError{Index: block.Index, Message: "incorrect block reward"}
	}
	return nil
}
