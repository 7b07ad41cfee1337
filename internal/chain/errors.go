package chain

import "fmt"

// Validation failures form a closed set of conditions, each carrying the
// index of the offending block. They are expected outcomes, logged and
// converted to a boolean at the AddBlock / PushPendingTransaction boundary;
// they never escape as generic faults.

// GenesisMismatchError reports an index-0 block that is not the pinned
// genesis block.
type GenesisMismatchError struct {
	Index   uint64
	Message string
}

func (e *GenesisMismatchError) Error() string {
	return fmt.Sprintf("genesis block mismatch (block %d): %s", e.Index, e.Message)
}

// InvalidHashError reports a block hash that does not satisfy the
// proof-of-work predicate.
type InvalidHashError struct {
	Index   uint64
	Message string
}

func (e *InvalidHashError) Error() string {
	return fmt.Sprintf("invalid hash (block %d): %s", e.Index, e.Message)
}

// ChainContinuityError reports a block that does not extend the current
// latest block.
type ChainContinuityError struct {
	Index   uint64
	Message string
}

func (e *ChainContinuityError) Error() string {
	return fmt.Sprintf("chain continuity error (block %d): %s", e.Index, e.Message)
}

// InvalidTransactionsError reports a block whose transactions violate the
// replay, signature, balance or reward rules.
type InvalidTransactionsError struct {
	Index   uint64
	Message string
}

func (e *InvalidTransactionsError) Error() string {
	return fmt.Sprintf("invalid transactions (block %d): %s", e.Index, e.Message)
}
