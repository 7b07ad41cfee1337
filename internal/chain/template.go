package chain

import (
	"time"

	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/models"
)

// MinableBlock assembles a block candidate for mining: pending transactions
// in arrival order up to the policy cap, followed by a synthesized reward
// transaction crediting rewardAddress with the base reward plus the
// selected fees. Entries already confirmed on-chain, already selected in
// this pass, or no longer carrying a valid signature are skipped; a
// zero-value pool entry ends the scan. The nonce and current hash are left
// for the miner to fill in. Chain state is not mutated.
func (c *Chain) MinableBlock(rewardAddress string) models.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	latest := c.blocks[len(c.blocks)-1]
	newIndex := latest.Index + 1

	var transactions []models.Transaction
	var fees uint64
	selected := make(map[string]struct{})

	for _, t := range c.pending {
		if t.TxHash == "" {
			break
		}
		if _, ok := selected[t.TxHash]; ok {
			continue
		}
		if _, ok := c.confirmedBlockIndex(t.TxHash); ok {
			continue
		}
		if !crypto.Verify(t) {
			continue
		}
		transactions = append(transactions, t)
		selected[t.TxHash] = struct{}{}
		fees += t.Fee
		if len(transactions) >= c.policy.MaxTransactionsPerBlock {
			break
		}
	}

	timestamp := uint64(time.Now().Unix())

	reward := models.Transaction{
		Source:      models.CoinbaseAddress,
		Destination: rewardAddress,
		Amount:      c.policy.BaseReward(newIndex) + fees,
		Fee:         0,
		Timestamp:   timestamp,
		Signature:   "0",
	}
	reward.TxHash = crypto.HashTransaction(reward)
	transactions = append(transactions, reward)

	return models.Block{
		Index:        newIndex,
		Transactions: transactions,
		PreviousHash: latest.CurrentHash,
		Timestamp:    timestamp,
	}
}
