package storage

import (
	"errors"
)

// KeyPrefix constants.
const (
	// DataVerifyingKey is used for circuit verifying keys produced by the
	// setup of an execution context.
	DataVerifyingKey KeyPrefix = 0x01
	// DataTransition is used for transitions executed in the context,
	// identified by transition ID.
	DataTransition KeyPrefix = 0x02
	// DataLedger is used for ledger state items. It's never populated by
	// disposable contexts, but it's a part of the global state root.
	DataLedger KeyPrefix = 0x03
	// SYSNetwork stores the network the context is created for.
	SYSNetwork KeyPrefix = 0xf0
)

// KeyValue represents a key-value pair.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// SeekRange represents options for Store.Seek operation.
type SeekRange struct {
	// Prefix denotes the Seek's lookup key.
	Prefix []byte
	// Start denotes value appended to the Prefix to start Seek from.
	// Seeking starting from some key includes this key to the result;
	// if no matching key was found then next suitable key is picked up.
	// Empty Start means seeking through all keys with matching Prefix.
	Start []byte
	// Backwards denotes whether Seek direction should be reversed, i.e.
	// whether seeking should be performed in a descending way.
	Backwards bool
}

// ErrKeyNotFound is an error returned by Store implementations
// when a certain key is not found.
var ErrKeyNotFound = errors.New("key not found")

type (
	// Store is the underlying KV backend of an execution context.
	Store interface {
		Get([]byte) ([]byte, error)
		// PutChangeSet allows to push prepared changeset to the Store,
		// nil values delete the corresponding keys.
		PutChangeSet(puts map[string][]byte) error
		// Seek guarantees that key-value items are sorted by key in
		// ascending (or descending for backwards seeking) way. Seek
		// continues iteration until false is returned from f. Key and
		// value slices should not be modified.
		Seek(rng SeekRange, f func(k, v []byte) bool)
		Close() error
	}

	// KeyPrefix is a constant byte added as a prefix for each key
	// stored.
	KeyPrefix uint8
)

// Bytes returns the bytes representation of KeyPrefix.
func (k KeyPrefix) Bytes() []byte {
	return []byte{byte(k)}
}

// AppendPrefix appends byteslice b to the given KeyPrefix.
func AppendPrefix(k KeyPrefix, b []byte) []byte {
	dest := make([]byte, len(b)+1)
	dest[0] = byte(k)
	copy(dest[1:], b)
	return dest
}

// Put is a helper for a single-item change set.
func Put(s Store, key, value []byte) error {
	return s.PutChangeSet(map[string][]byte{string(key): value})
}
