package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krewshul/uclcoin/internal/chain"
	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/models"
)

// TransactionHandler handles transaction-related API requests
type TransactionHandler struct {
	chain *chain.Chain
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(c *chain.Chain) *TransactionHandler {
	return &TransactionHandler{chain: c}
}

// Submit pushes a transaction into the pending pool
// POST /api/v1/transactions
func (h *TransactionHandler) Submit(c *gin.Context) {
	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction payload"})
		return
	}
	// The identity hash is derived from the other fields; a client sending
	// a mismatched one is malformed input, not a validation outcome.
	if tx.TxHash != crypto.HashTransaction(tx) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction hash does not match contents"})
		return
	}

	if !h.chain.PushPendingTransaction(tx) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction rejected"})
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GetPending returns the pending pool in arrival order
// GET /api/v1/transactions/pending
func (h *TransactionHandler) GetPending(c *gin.Context) {
	pending := h.chain.PendingTransactions()
	c.JSON(http.StatusOK, gin.H{
		"count":        len(pending),
		"transactions": pending,
	})
}

// Remove withdraws a pending transaction by its hash
// DELETE /api/v1/transactions/:txhash
func (h *TransactionHandler) Remove(c *gin.Context) {
	txHash := c.Param("txhash")
	if !h.chain.RemovePendingTransaction(txHash) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": txHash})
}
