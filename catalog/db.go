// Package catalog keeps a sqlite index of the recordings and photo strips
// produced by the camera sessions.
package catalog

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get for an unknown capture id.
var ErrNotFound = errors.New("capture not found")

// Kind is the type of a capture.
type Kind string

// The capture kinds.
const (
	KindVideo      Kind = "video"
	KindPhotostrip Kind = "photostrip"
)

// Capture is a cataloged output file.
type Capture struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	Kind      Kind      `json:"kind"`
	Path      string    `json:"path"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Frames    int       `json:"frames"`
	CreatedAt time.Time `json:"created_at"`
}

// DB is the capture catalog.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the catalog stored at path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	db := &DB{conn: conn}
	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to create tables")
	}
	return db, nil
}

func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS captures (
		id TEXT PRIMARY KEY,
		session_id TEXT,
		kind TEXT NOT NULL,
		path TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		frames INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	_, err := db.conn.Exec(query)
	return err
}

// Close closes the database.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Insert adds c to the catalog, assigning its id and creation time when unset.
func (db *DB) Insert(c *Capture) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()

	_, err := db.conn.Exec(
		`INSERT INTO captures (id, session_id, kind, path, width, height, frames, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SessionID, string(c.Kind), c.Path, c.Width, c.Height, c.Frames, c.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert capture")
	}
	return nil
}

// Get returns the capture with the given id.
func (db *DB) Get(id string) (*Capture, error) {
	row := db.conn.QueryRow(
		`SELECT id, session_id, kind, path, width, height, frames, created_at
		FROM captures WHERE id = ?`, id)

	c, err := scanCapture(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(ErrNotFound, id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get capture")
	}
	return c, nil
}

// List returns the captures of the given kind, newest first. An empty kind
// lists every capture.
func (db *DB) List(kind Kind) ([]Capture, error) {
	query := `SELECT id, session_id, kind, path, width, height, frames, created_at FROM captures`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list captures")
	}
	defer rows.Close()

	captures := []Capture{}
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan capture")
		}
		captures = append(captures, *c)
	}
	return captures, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCapture(s scanner) (*Capture, error) {
	var (
		c       Capture
		kind    string
		session sql.NullString
	)
	err := s.Scan(&c.ID, &session, &kind, &c.Path, &c.Width, &c.Height, &c.Frames, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Kind = Kind(kind)
	c.SessionID = session.String

	return &c, nil
}
