package storage

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/krewshul/uclcoin/internal/models"
)

// tipKey tracks the index of the last persisted block.
const tipKey = "tip_height"

// BlockStore handles block persistence. Blocks are keyed by zero-padded
// index so iteration yields chain order.
type BlockStore struct {
	db *PebbleDB
}

// NewBlockStore creates a new BlockStore
func NewBlockStore(db *PebbleDB) *BlockStore {
	return &BlockStore{db: db}
}

func blockKey(index uint64) []byte {
	return []byte(fmt.Sprintf("%012d", index))
}

// Save stores a block and advances the tip height in one atomic batch.
func (s *BlockStore) Save(block models.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("failed to marshal block: %w", err)
	}

	batch := s.db.NewBatch()
	defer batch.Destroy()

	if err := s.db.PutBatch(batch, CFBlocks, blockKey(block.Index), data); err != nil {
		return err
	}
	if err := s.db.PutBatch(batch, CFChainState, []byte(tipKey), []byte(strconv.FormatUint(block.Index, 10))); err != nil {
		return err
	}

	return s.db.WriteBatch(batch)
}

// GetByIndex retrieves a block by its index. A missing block returns
// (nil, nil).
func (s *BlockStore) GetByIndex(index uint64) (*models.Block, error) {
	data, err := s.db.Get(CFBlocks, blockKey(index))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var block models.Block
	if err := json.Unmarshal(data, &block); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block: %w", err)
	}
	return &block, nil
}

// TipHeight returns the index of the last persisted block, or -1 if the
// store is empty.
func (s *BlockStore) TipHeight() (int64, error) {
	data, err := s.db.Get(CFChainState, []byte(tipKey))
	if err != nil {
		return 0, err
	}
	if data == nil {
		return -1, nil
	}

	height, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse tip height: %w", err)
	}
	return height, nil
}

// LoadAll returns every persisted block in chain order.
func (s *BlockStore) LoadAll() ([]models.Block, error) {
	iter, err := s.db.NewIterator(CFBlocks)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var blocks []models.Block
	for ; iter.Valid(); iter.Next() {
		var block models.Block
		if err := json.Unmarshal(iter.Value(), &block); err != nil {
			return nil, fmt.Errorf("failed to unmarshal block %s: %w", iter.Key(), err)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}
