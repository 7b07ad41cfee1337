package rpc

import "github.com/krewshul/uclcoin/internal/models"

// VersionResponse is the payload of GET /version.
type VersionResponse struct {
	Version string `json:"version"`
}

// BalanceResponse is the payload of the balance endpoints.
type BalanceResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// MinableBlockResponse is the payload of GET /api/v1/blocks/minable/:address.
type MinableBlockResponse struct {
	Block      models.Block `json:"block"`
	Difficulty int          `json:"difficulty"`
}

// PendingTransactionsResponse is the payload of GET /api/v1/transactions/pending.
type PendingTransactionsResponse struct {
	Count        int                  `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
}

// ErrorResponse is the payload of rejected or failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
