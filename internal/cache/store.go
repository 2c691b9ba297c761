// Package cache persists fetched platform snapshots in a local SQLite
// database so analysis commands can run without hitting the API.
package cache

import (
	"time"

	"github.com/flowlens-labs/flowlens/internal/platform"
)

// SnapshotInfo describes one stored snapshot.
type SnapshotInfo struct {
	ID            string
	CreatedAt     time.Time
	DataflowCount int
	DatasetCount  int
	CardCount     int
}

// Store is the snapshot cache interface.
type Store interface {
	// SaveSnapshot stores a full snapshot and returns its id.
	SaveSnapshot(snap *platform.Snapshot) (string, error)

	// LatestSnapshot returns the most recent snapshot's info, or nil when
	// the cache is empty.
	LatestSnapshot() (*SnapshotInfo, error)

	// LoadDataflows returns the dataflow records of a snapshot.
	LoadDataflows(snapshotID string) ([]platform.Dataflow, error)

	// LoadDatasets returns the dataset records of a snapshot.
	LoadDatasets(snapshotID string) ([]platform.Dataset, error)

	// LoadCards returns the card records of a snapshot.
	LoadCards(snapshotID string) ([]platform.Card, error)

	// Prune deletes all but the newest keep snapshots.
	Prune(keep int) error

	Close() error
}
