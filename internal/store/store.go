// Package store persists scene book snapshots.
package store

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/tnguyen21/scenebook/internal/scene"
)

// SnapshotVersion is written into every snapshot. Older snapshots load by
// defaulting absent fields.
const SnapshotVersion = 1

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot saved")

// Snapshot is the persisted state: the mode catalog and the scene book.
type Snapshot struct {
	Version          int          `yaml:"version"`
	Modes            []scene.Mode `yaml:"modes"`
	scene.BookRecord `yaml:",inline"`

	// Seq orders captures within the process. Zero means unordered.
	Seq uint64 `yaml:"-"`
}

// Store loads and saves snapshots.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Close() error
}

// Open returns the store for backend ("yaml" or "sqlite") at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "yaml", "":
		return NewFileStore(path), nil
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

var captures atomic.Uint64

// Capture takes a consistent copy of the shared book, stamped with the next
// capture sequence number.
func Capture(sh *scene.Shared) Snapshot {
	snap := Snapshot{Version: SnapshotVersion, Modes: sh.Catalog().Modes()}
	sh.Read(func(b *scene.Book) {
		snap.BookRecord = b.Record()
		snap.Seq = captures.Add(1)
	})
	return snap
}

// writeGate serializes saves and drops any snapshot captured before the one
// last written, so a slow save cannot overwrite newer state.
type writeGate struct {
	mu   sync.Mutex
	last uint64
}

// write runs save under the gate unless snap is stale. Stale snapshots are
// skipped without error.
func (g *writeGate) write(snap Snapshot, save func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if snap.Seq != 0 && snap.Seq <= g.last {
		return nil
	}
	if err := save(); err != nil {
		return err
	}
	if snap.Seq > g.last {
		g.last = snap.Seq
	}
	return nil
}

// Book rebuilds the book held by the snapshot. Snapshots written before
// modes were persisted use fallback.
func (s Snapshot) Book(fallback *scene.Catalog) (*scene.Book, error) {
	cat := fallback
	if len(s.Modes) > 0 {
		var err error
		if cat, err = scene.NewCatalog(s.Modes...); err != nil {
			return nil, fmt.Errorf("snapshot modes: %w", err)
		}
	}
	return scene.BookFromRecord(cat, s.BookRecord)
}

// Restore loads the saved book from st. A missing, unreadable or invalid
// snapshot yields a fresh book over fallback; that is logged, never returned.
func Restore(st Store, fallback *scene.Catalog, logger *log.Logger) *scene.Shared {
	snap, err := st.Load()
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			logger.Info("no saved scenes, starting fresh")
		} else {
			logger.Warn("could not load saved scenes, starting fresh", "err", err)
		}
		return scene.NewShared(scene.NewBook(fallback))
	}

	book, err := snap.Book(fallback)
	if err != nil {
		logger.Warn("saved scenes are invalid, starting fresh", "err", err)
		return scene.NewShared(scene.NewBook(fallback))
	}
	logger.Info("restored scenes", "count", book.Len(), "version", snap.Version)
	return scene.NewShared(book)
}

func encode(s Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return s, nil
}
