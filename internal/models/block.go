package models

// Block represents a block in the chain. Transactions is never empty for a
// well-formed block; its last entry is always the reward transaction.
// CurrentHash must satisfy the proof-of-work predicate for every block
// except genesis, which is pinned by value.
type Block struct {
	Index        uint64        `json:"index"`
	Transactions []Transaction `json:"transactions"`
	PreviousHash string        `json:"previous_hash"`
	Timestamp    uint64        `json:"timestamp"`
	Nonce        uint64        `json:"nonce"`
	CurrentHash  string        `json:"current_hash"`
}
