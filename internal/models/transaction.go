package models

// CoinbaseAddress is the reserved source address of block reward transactions.
const CoinbaseAddress = "0"

// Transaction represents a single transfer between two addresses.
// Addresses are hex-encoded compressed secp256k1 public keys, except for
// the coinbase sentinel "0". TxHash is the chain-wide unique identity of
// the transaction.
type Transaction struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
	Fee         uint64 `json:"fee"`
	Timestamp   uint64 `json:"timestamp"`
	Signature   string `json:"signature"`
	TxHash      string `json:"tx_hash"`
}

// IsCoinbase returns true if the transaction is a block reward.
func (t Transaction) IsCoinbase() bool {
	return t.Source == CoinbaseAddress
}
