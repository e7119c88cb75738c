package core

// KVStore is the durable key-value storage the record collections persist to.
// Each collection serializes to its own named slot as a whole document.
// Implementations must be safe for concurrent use.
type KVStore interface {
	// Get returns the document stored under key. ok is false when the slot
	// has never been written (or has been deleted).
	Get(key string) (doc []byte, ok bool, err error)

	// Set overwrites the whole document stored under key.
	Set(key string, doc []byte) error

	// Delete clears the slot. Deleting a missing slot is not an error.
	Delete(key string) error
}
