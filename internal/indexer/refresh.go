package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/usestring/ghspec/pkg/apispec"
)

// ErrNoSource is returned when refreshing an Indexer built from a document
// rather than a file.
var ErrNoSource = errors.New("indexer has no source file")

// fileStamp identifies one version of the source file.
type fileStamp struct {
	modTime time.Time
	size    int64
}

// Refresh reloads the source document and rebuilds the index.
// Concurrent refreshes share one load.
func (idx *Indexer) Refresh(ctx context.Context) error {
	if idx.path == "" {
		return ErrNoSource
	}

	_, err, _ := idx.refreshGroup.Do(idx.path, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stamp, err := statFile(idx.path)
		if err != nil {
			return nil, err
		}
		doc, err := apispec.Load(idx.path)
		if err != nil {
			return nil, err
		}

		idx.Build(doc)

		idx.mu.Lock()
		idx.stamp = stamp
		n := len(idx.docs)
		idx.mu.Unlock()

		slog.Debug("index rebuilt",
			slog.String("path", idx.path),
			slog.Int("entries", n),
		)
		return nil, nil
	})
	return err
}

// RefreshIfStale rebuilds the index when the source file changed since the
// last build, judged by modification time and size.
func (idx *Indexer) RefreshIfStale(ctx context.Context) error {
	if idx.path == "" {
		return nil
	}

	stamp, err := statFile(idx.path)
	if err != nil {
		return err
	}

	idx.mu.RLock()
	fresh := !idx.lastSyncAt.IsZero() && stamp.equal(idx.stamp)
	idx.mu.RUnlock()
	if fresh {
		return nil
	}
	return idx.Refresh(ctx)
}

func (s fileStamp) equal(o fileStamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

func statFile(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, fmt.Errorf("reading spec document: %w", err)
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, nil
}
