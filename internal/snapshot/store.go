package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/cadence/internal/config"
	"github.com/teemow/cadence/internal/model"
	"github.com/teemow/cadence/internal/oneonone"
)

// Store is a closable snapshot store.
type Store interface {
	Save(ctx context.Context, due model.DueDates) error
	Load(ctx context.Context) (model.DueDates, error)
	SavedAt(ctx context.Context) (time.Time, error)
	Close() error
}

// Open returns the store for backend ("file" or "sqlite") at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case config.SnapshotBackendFile, "":
		return NewFileStore(path), nil
	case config.SnapshotBackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", backend)
	}
}

func notFound(path string) error {
	return &oneonone.NotFoundError{Kind: oneonone.KindSnapshot, Key: path}
}
