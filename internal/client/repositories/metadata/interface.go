// Package metadata stores small key/value records in the local SQLite
// database. The session store keeps the persisted token and profile here.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/grain/internal/dbx"
)

// Repository is a key/value store. Get returns (nil, nil) for a missing key
// and deleting a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	DeleteMany(ctx context.Context, keys ...string) error
	// WithDB binds the repository to db, usually an open transaction.
	WithDB(db dbx.DBTX) Repository
}
