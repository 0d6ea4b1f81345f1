// Package chronicle provides SQLite-backed storage for civilization
// milestones and resolved narrative events, so a run's history survives
// process restarts.
package chronicle

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/stonefall/internal/game"
)

// DB wraps a SQLite connection. It implements game.Recorder.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chronicle_entries (
		id TEXT PRIMARY KEY,
		tick INTEGER NOT NULL,
		era INTEGER NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		icon TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS resolved_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL,
		choice_id TEXT NOT NULL,
		resolved_at INTEGER NOT NULL,
		event_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chronicle_tick ON chronicle_entries(tick);
	CREATE INDEX IF NOT EXISTS idx_resolved_events_tick ON resolved_events(resolved_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordEntry persists a single chronicle milestone.
func (db *DB) RecordEntry(entry game.ChronicleEntry) error {
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO chronicle_entries
		(id, tick, era, type, title, description, icon)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Tick, int(entry.Era), string(entry.Type),
		entry.Title, entry.Description, entry.Icon,
	)
	if err != nil {
		return fmt.Errorf("insert chronicle entry %s: %w", entry.ID, err)
	}
	return nil
}

// RecordResolvedEvent persists a resolved narrative event, keeping the full
// event as a JSON blob alongside the indexed columns.
func (db *DB) RecordResolvedEvent(re game.ResolvedEvent) error {
	blob, err := json.Marshal(re)
	if err != nil {
		return fmt.Errorf("marshal resolved event: %w", err)
	}

	_, err = db.conn.Exec(
		`INSERT INTO resolved_events (event_id, choice_id, resolved_at, event_json)
		VALUES (?, ?, ?, ?)`,
		re.Event.ID, re.ChoiceID, re.ResolvedAt, string(blob),
	)
	if err != nil {
		return fmt.Errorf("insert resolved event %s: %w", re.Event.ID, err)
	}
	return nil
}

// Entries returns the most recent N chronicle entries, oldest first.
func (db *DB) Entries(limit int) ([]game.ChronicleEntry, error) {
	rows, err := db.conn.Queryx(
		`SELECT id, tick, era, type, title, description, icon
		FROM chronicle_entries ORDER BY tick DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []game.ChronicleEntry
	for rows.Next() {
		var (
			e       game.ChronicleEntry
			era     int
			entType string
		)
		if err := rows.Scan(&e.ID, &e.Tick, &era, &entType, &e.Title, &e.Description, &e.Icon); err != nil {
			return nil, err
		}
		e.Era = game.Era(era)
		e.Type = game.ChronicleType(entType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// ORDER BY DESC picks the newest entries, reverse to chronological.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// ResolvedEvents returns the most recent N resolved events, oldest first.
func (db *DB) ResolvedEvents(limit int) ([]game.ResolvedEvent, error) {
	var blobs []string
	err := db.conn.Select(&blobs,
		`SELECT event_json FROM resolved_events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}

	events := make([]game.ResolvedEvent, 0, len(blobs))
	for i := len(blobs) - 1; i >= 0; i-- {
		var re game.ResolvedEvent
		if err := json.Unmarshal([]byte(blobs[i]), &re); err != nil {
			return nil, fmt.Errorf("unmarshal resolved event: %w", err)
		}
		events = append(events, re)
	}
	return events, nil
}
