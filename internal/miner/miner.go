// Package miner implements the proof-of-work search over block candidates
// produced by the chain's template builder.
package miner

import (
	"context"
	"strings"

	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/models"
)

// MeetsDifficulty reports whether a block hash starts with the required
// number of zero characters.
func MeetsDifficulty(hash string, difficulty int) bool {
	if len(hash) < difficulty {
		return false
	}
	return strings.Count(hash[:difficulty], "0") >= difficulty
}

// Mine searches nonces from zero until the block hash satisfies the
// difficulty predicate, returning the block with its nonce and current
// hash filled in. The search stops early when ctx is cancelled.
func Mine(ctx context.Context, block models.Block, difficulty int) (models.Block, error) {
	for nonce := uint64(0); ; nonce++ {
		select {
		case <-ctx.Done():
			return models.Block{}, ctx.Err()
		default:
		}

		block.Nonce = nonce
		hash := crypto.HashBlock(block)
		if MeetsDifficulty(hash, difficulty) {
			block.CurrentHash = hash
			return block, nil
		}
	}
}
