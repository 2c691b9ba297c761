package cache

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/flowlens-labs/flowlens/internal/platform"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the cache database at path and initializes the
// schema. Use ":memory:" for an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores a full snapshot in one transaction.
func (s *SQLiteStore) SaveSnapshot(snap *platform.Snapshot) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	createdAt := snap.FetchedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.Exec(
		`INSERT INTO snapshots (id, created_at, dataflow_count, dataset_count, card_count)
		 VALUES (?, ?, ?, ?, ?)`,
		id, createdAt, len(snap.Dataflows), len(snap.Datasets), len(snap.Cards),
	)
	if err != nil {
		return "", fmt.Errorf("inserting snapshot: %w", err)
	}

	for _, df := range snap.Dataflows {
		if err := insertRecord(tx, "dataflows", id, df.ID, df.Name, df); err != nil {
			return "", err
		}
	}
	for _, ds := range snap.Datasets {
		if err := insertRecord(tx, "datasets", id, ds.ID, ds.Name, ds); err != nil {
			return "", err
		}
	}
	for _, c := range snap.Cards {
		if err := insertRecord(tx, "cards", id, c.ID, c.Title, c); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing snapshot: %w", err)
	}
	return id, nil
}

func insertRecord(tx *sql.Tx, table, snapshotID, id, name string, v any) error {
	if id == "" {
		// Records without ids cannot be keyed; skip them the same way the
		// graph builder does.
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s record %s: %w", table, id, err)
	}
	_, err = tx.Exec(
		`INSERT OR REPLACE INTO `+table+` (snapshot_id, id, name, payload) VALUES (?, ?, ?, ?)`,
		snapshotID, id, name, string(payload),
	)
	if err != nil {
		return fmt.Errorf("inserting %s record %s: %w", table, id, err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot, or nil when none exists.
func (s *SQLiteStore) LatestSnapshot() (*SnapshotInfo, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, dataflow_count, dataset_count, card_count
		 FROM snapshots ORDER BY created_at DESC, id DESC LIMIT 1`)

	var info SnapshotInfo
	err := row.Scan(&info.ID, &info.CreatedAt, &info.DataflowCount, &info.DatasetCount, &info.CardCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}
	return &info, nil
}

// LoadDataflows returns the dataflow records of a snapshot.
func (s *SQLiteStore) LoadDataflows(snapshotID string) ([]platform.Dataflow, error) {
	return loadRecords[platform.Dataflow](s, "dataflows", snapshotID)
}

// LoadDatasets returns the dataset records of a snapshot.
func (s *SQLiteStore) LoadDatasets(snapshotID string) ([]platform.Dataset, error) {
	return loadRecords[platform.Dataset](s, "datasets", snapshotID)
}

// LoadCards returns the card records of a snapshot.
func (s *SQLiteStore) LoadCards(snapshotID string) ([]platform.Card, error) {
	return loadRecords[platform.Card](s, "cards", snapshotID)
}

func loadRecords[T any](s *SQLiteStore, table, snapshotID string) ([]T, error) {
	rows, err := s.db.Query(
		`SELECT payload FROM `+table+` WHERE snapshot_id = ? ORDER BY rowid`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		var v T
		if err := json.Unmarshal([]byte(payload), &v); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", table, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep snapshots. Foreign keys cascade the
// record rows.
func (s *SQLiteStore) Prune(keep int) error {
	if keep < 1 {
		keep = 1
	}
	_, err := s.db.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (
		   SELECT id FROM snapshots ORDER BY created_at DESC, id DESC LIMIT ?
		 )`, keep)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
