package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/krewshul/uclcoin/internal/chain"
)

// BalanceHandler handles balance-related API requests
type BalanceHandler struct {
	chain *chain.Chain
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(c *chain.Chain) *BalanceHandler {
	return &BalanceHandler{chain: c}
}

// Get returns the confirmed balance of an address
// GET /api/v1/balance/:address
func (h *BalanceHandler) Get(c *gin.Context) {
	address := c.Param("address")
	c.JSON(http.StatusOK, gin.H{
		"address": address,
		"balance": h.chain.Balance(address),
	})
}

// GetPending returns the balance of an address with pending transactions
// applied on top of the confirmed balance
// GET /api/v1/balance/:address/pending
func (h *BalanceHandler) GetPending(c *gin.Context) {
	address := c.Param("address")
	c.JSON(http.StatusOK, gin.H{
		"address": address,
		"balance": h.chain.PendingBalance(address),
	})
}
