// Package storage persists accepted blocks in a Pebble database. The chain
// core itself is storage-free; callers persist blocks explicitly after
// acceptance and restore the chain by replaying them at startup.
package storage

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
)

// Key prefixes (simulating column families)
const (
	PrefixBlocks     = "blk:"
	PrefixChainState = "cst:"
)

// Column family names
const (
	CFBlocks     = "blocks"
	CFChainState = "chain_state"
)

var cfPrefixes = map[string]string{
	CFBlocks:     PrefixBlocks,
	CFChainState: PrefixChainState,
}

// PebbleDB wraps the Pebble database
type PebbleDB struct {
	db *pebble.DB
}

// WriteBatch wraps Pebble's batch for atomic writes
type WriteBatch struct {
	batch *pebble.Batch
}

// Iterator wraps Pebble's iterator
type Iterator struct {
	iter     *pebble.Iterator
	cfPrefix []byte
}

// NewPebbleDB creates a new PebbleDB instance
func NewPebbleDB(path string) (*PebbleDB, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	opts := &pebble.Options{
		Cache:        pebble.NewCache(64 << 20),
		MaxOpenFiles: 500,
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &PebbleDB{db: db}, nil
}

// Close closes the database
func (p *PebbleDB) Close() error {
	return p.db.Close()
}

// prefixKey creates a prefixed key for the given column family
func (p *PebbleDB) prefixKey(cf string, key []byte) ([]byte, error) {
	prefix, ok := cfPrefixes[cf]
	if !ok {
		return nil, fmt.Errorf("column family not found: %s", cf)
	}
	return append([]byte(prefix), key...), nil
}

// Put stores a key-value pair in the specified column family
func (p *PebbleDB) Put(cf string, key, value []byte) error {
	prefixedKey, err := p.prefixKey(cf, key)
	if err != nil {
		return err
	}
	return p.db.Set(prefixedKey, value, pebble.Sync)
}

// Get retrieves a value from the specified column family. A missing key
// returns (nil, nil).
func (p *PebbleDB) Get(cf string, key []byte) ([]byte, error) {
	prefixedKey, err := p.prefixKey(cf, key)
	if err != nil {
		return nil, err
	}

	value, closer, err := p.db.Get(prefixedKey)
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()

	// Copy the value since it's only valid until closer.Close()
	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Delete removes a key from the specified column family
func (p *PebbleDB) Delete(cf string, key []byte) error {
	prefixedKey, err := p.prefixKey(cf, key)
	if err != nil {
		return err
	}
	return p.db.Delete(prefixedKey, pebble.Sync)
}

// NewBatch creates a new write batch
func (p *PebbleDB) NewBatch() *WriteBatch {
	return &WriteBatch{batch: p.db.NewBatch()}
}

// WriteBatch commits a batch to the database
func (p *PebbleDB) WriteBatch(batch *WriteBatch) error {
	return batch.batch.Commit(pebble.Sync)
}

// PutBatch adds a put operation to the batch
func (p *PebbleDB) PutBatch(batch *WriteBatch, cf string, key, value []byte) error {
	prefixedKey, err := p.prefixKey(cf, key)
	if err != nil {
		return err
	}
	return batch.batch.Set(prefixedKey, value, nil)
}

// Destroy closes the batch and releases resources
func (b *WriteBatch) Destroy() {
	b.batch.Close()
}

// NewIterator creates an iterator over the specified column family, in key
// order.
func (p *PebbleDB) NewIterator(cf string) (*Iterator, error) {
	prefix, ok := cfPrefixes[cf]
	if !ok {
		return nil, fmt.Errorf("column family not found: %s", cf)
	}

	prefixBytes := []byte(prefix)
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefixBytes,
		UpperBound: prefixUpperBound(prefixBytes),
	})
	if err != nil {
		return nil, err
	}

	iter.First()
	return &Iterator{iter: iter, cfPrefix: prefixBytes}, nil
}

// prefixUpperBound returns the upper bound for prefix iteration
func prefixUpperBound(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	upper := make([]byte, len(prefix))
	copy(upper, prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}

// Valid returns true if the iterator is positioned at a valid key
func (i *Iterator) Valid() bool {
	return i.iter.Valid()
}

// Next advances the iterator to the next key
func (i *Iterator) Next() bool {
	return i.iter.Next()
}

// Key returns the current key without the column family prefix
func (i *Iterator) Key() []byte {
	key := i.iter.Key()
	if len(key) > len(i.cfPrefix) && bytes.HasPrefix(key, i.cfPrefix) {
		return key[len(i.cfPrefix):]
	}
	return key
}

// Value returns the current value
func (i *Iterator) Value() []byte {
	return i.iter.Value()
}

// Close closes the iterator
func (i *Iterator) Close() error {
	return i.iter.Close()
}
