package repositories

import "context"

// Storage keys, carried over unchanged from the original portal so
// exported backups and migrated data stay compatible.
const (
	KeyStudents = "mad_students"
	KeyConfig   = "mad_config"
	KeyMarks    = "mad_marks"
)

// KV is the durable storage contract the record store persists
// through: whole-collection JSON blobs under fixed keys. Each Put
// overwrites the previous blob for its key.
type KV interface {
	// Get returns the blob stored under key, or found=false when the
	// key has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put overwrites the blob stored under key.
	Put(ctx context.Context, key string, value []byte) error
	// PutAll writes every entry in one transaction. Used by restore,
	// which must re-key all collections atomically.
	PutAll(ctx context.Context, entries map[string][]byte) error
	// Close releases the underlying connection.
	Close() error
}
