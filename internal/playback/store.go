// Package playback persists playback-interruption state across process runs.
//
// When a file operation forces a playing episode to stop, the position and
// paused flag are written here; the invocation that re-adds the episode
// consumes the record and reopens the player. The store must survive process
// exit because the stop and the restart happen in different script runs.
package playback

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"kodisync/internal/kodi"
)

// ErrNotFound indicates no record matched.
var ErrNotFound = errors.New("not found")

// schemaVersion is stamped into PRAGMA user_version.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS stopped_playback (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	host          TEXT    NOT NULL,
	show_id       INTEGER NOT NULL,
	season        INTEGER NOT NULL,
	episode       INTEGER NOT NULL,
	episode_id    INTEGER NOT NULL,
	file          TEXT    NOT NULL,
	show_title    TEXT    NOT NULL,
	episode_title TEXT    NOT NULL,
	position      REAL    NOT NULL,
	paused        INTEGER NOT NULL,
	stopped_at    TIMESTAMP NOT NULL
);`

// Record is one interrupted-playback snapshot. Identity fields mirror
// kodi.EpisodeKey so records can be matched after a rescan reassigns ids.
type Record struct {
	ID        int64
	Host      string
	Key       kodi.EpisodeKey
	EpisodeID int // host-assigned id at the time of the stop
	File      string
	ShowTitle string
	Title     string
	Position  float64
	Paused    bool
	StoppedAt time.Time
}

// Store provides access to stopped-playback records.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open playback store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init playback schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("set schema version: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Add persists one stopped-playback record.
// Sets ID and StoppedAt on the struct.
func (s *Store) Add(r *Record) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO stopped_playback
			(host, show_id, season, episode, episode_id, file, show_title, episode_title, position, paused, stopped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Host, r.Key.ShowID, r.Key.Season, r.Key.Episode, r.EpisodeID,
		r.File, r.ShowTitle, r.Title, r.Position, r.Paused, now,
	)
	if err != nil {
		return fmt.Errorf("insert stopped playback: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	r.ID = id
	r.StoppedAt = now
	return nil
}

// Consume returns and deletes every record for one host and episode
// identity. A record is consumed exactly once: a second call for the same
// identity finds nothing.
func (s *Store) Consume(host string, key kodi.EpisodeKey) ([]Record, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query(`
		SELECT id, host, show_id, season, episode, episode_id, file, show_title, episode_title, position, paused, stopped_at
		FROM stopped_playback
		WHERE host = ? AND show_id = ? AND season = ? AND episode = ?
		ORDER BY id`,
		host, key.ShowID, key.Season, key.Episode,
	)
	if err != nil {
		return nil, fmt.Errorf("query stopped playback: %w", err)
	}

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Host, &r.Key.ShowID, &r.Key.Season, &r.Key.Episode,
			&r.EpisodeID, &r.File, &r.ShowTitle, &r.Title, &r.Position, &r.Paused, &r.StoppedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan stopped playback: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate stopped playback: %w", err)
	}
	rows.Close()

	if len(records) == 0 {
		return nil, nil
	}

	if _, err := tx.Exec(`
		DELETE FROM stopped_playback
		WHERE host = ? AND show_id = ? AND season = ? AND episode = ?`,
		host, key.ShowID, key.Season, key.Episode,
	); err != nil {
		return nil, fmt.Errorf("delete stopped playback: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return records, nil
}

// List returns all pending records without consuming them.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, host, show_id, season, episode, episode_id, file, show_title, episode_title, position, paused, stopped_at
		FROM stopped_playback ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stopped playback: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Host, &r.Key.ShowID, &r.Key.Season, &r.Key.Episode,
			&r.EpisodeID, &r.File, &r.ShowTitle, &r.Title, &r.Position, &r.Paused, &r.StoppedAt); err != nil {
			return nil, fmt.Errorf("scan stopped playback: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stopped playback: %w", err)
	}
	return records, nil
}
