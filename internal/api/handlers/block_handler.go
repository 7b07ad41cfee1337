package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krewshul/uclcoin/internal/chain"
	"github.com/krewshul/uclcoin/internal/models"
)

// BlockPersister stores accepted blocks. Implemented by storage.BlockStore.
type BlockPersister interface {
	Save(block models.Block) error
}

// BlockHandler handles block-related API requests
type BlockHandler struct {
	chain      *chain.Chain
	blockStore BlockPersister
}

// NewBlockHandler creates a new BlockHandler. blockStore may be nil when
// running without persistence.
func NewBlockHandler(c *chain.Chain, blockStore BlockPersister) *BlockHandler {
	return &BlockHandler{chain: c, blockStore: blockStore}
}

// GetLatest returns the latest block
// GET /api/v1/blocks/latest
func (h *BlockHandler) GetLatest(c *gin.Context) {
	c.JSON(http.StatusOK, h.chain.LatestBlock())
}

// GetByIndex returns a block by its index
// GET /api/v1/blocks/:index
func (h *BlockHandler) GetByIndex(c *gin.Context) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block index"})
		return
	}

	block, ok := h.chain.BlockByIndex(index)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
		return
	}
	c.JSON(http.StatusOK, block)
}

// GetMinable returns a block candidate rewarding the given address,
// together with the difficulty its hash must meet. The nonce and current
// hash are left for the miner.
// GET /api/v1/blocks/minable/:address
func (h *BlockHandler) GetMinable(c *gin.Context) {
	address := c.Param("address")
	block := h.chain.MinableBlock(address)

	c.JSON(http.StatusOK, gin.H{
		"block":      block,
		"difficulty": h.chain.Policy().HashDifficulty(block.Index),
	})
}

// Submit validates a mined block and appends it to the chain. Accepted
// blocks are persisted and their transactions removed from the pending
// pool; rejected blocks yield 400. A persistence failure after acceptance
// yields 500: the block stays in the in-memory chain, and a restart
// restores from the last persisted height.
// POST /api/v1/blocks
func (h *BlockHandler) Submit(c *gin.Context) {
	var block models.Block
	if err := c.ShouldBindJSON(&block); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block payload"})
		return
	}
	// A block without transactions cannot even be evaluated by the
	// consensus rules; reject it at the boundary.
	if len(block.Transactions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Block has no transactions"})
		return
	}

	if !h.chain.AddBlock(block) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Block rejected"})
		return
	}

	// The core does not purge mined transactions on acceptance; that is
	// this caller's job.
	for _, t := range block.Transactions {
		h.chain.RemovePendingTransaction(t.TxHash)
	}

	if h.blockStore != nil {
		if err := h.blockStore.Save(block); err != nil {
			log.Printf("[API] Failed to persist block %d: %v", block.Index, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Block accepted but not persisted"})
			return
		}
	}

	c.JSON(http.StatusCreated, block)
}
