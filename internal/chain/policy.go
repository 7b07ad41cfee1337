package chain

// Policy carries the economic parameters of the chain. Reward and
// difficulty take the block index so a halving schedule or retargeting can
// be introduced without touching validation logic; both are flat for now.
type Policy struct {
	CoinsPerBlock           uint64
	MinimumHashDifficulty   int
	MaxTransactionsPerBlock int
}

// DefaultPolicy returns the protocol constants: 10 coins per block,
// difficulty 6, at most 50 transactions per block besides the reward.
func DefaultPolicy() Policy {
	return Policy{
		CoinsPerBlock:           10,
		MinimumHashDifficulty:   6,
		MaxTransactionsPerBlock: 50,
	}
}

// BaseReward returns the coinbase reward for the block at index.
func (p Policy) BaseReward(index uint64) uint64 {
	return p.CoinsPerBlock
}

// HashDifficulty returns the number of leading zero characters a block hash
// must have at the given index.
func (p Policy) HashDifficulty(index uint64) int {
	return p.MinimumHashDifficulty
}
