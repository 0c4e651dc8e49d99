package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SQLiteStore keeps documents as JSON text in a single SQLite table
type SQLiteStore struct {
	db  *DB
	log zerolog.Logger
}

// NewSQLiteStore creates a document store over a migrated database
func NewSQLiteStore(db *DB, log zerolog.Logger) *SQLiteStore {
	return &SQLiteStore{
		db:  db,
		log: log.With().Str("store", "sqlite").Str("database", db.Name()).Logger(),
	}
}

// DB returns the wrapped database
func (s *SQLiteStore) DB() *DB {
	return s.db
}

// NewID returns a random UUID
func (s *SQLiteStore) NewID() string {
	return uuid.NewString()
}

// Insert stores a new document
func (s *SQLiteStore) Insert(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.db.Conn().ExecContext(ctx,
		`INSERT INTO documents (collection, id, data, created_at) VALUES (?, ?, ?, ?)`,
		collection, id, string(data), time.Now().Unix(),
	)
	if err != nil {
		return err
	}

	s.log.Debug().Str("collection", collection).Str("id", id).Msg("Document inserted")
	return nil
}

// FindAll decodes every document of a collection into out, a pointer to a slice
func (s *SQLiteStore) FindAll(ctx context.Context, collection string, out interface{}) error {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT data FROM documents WHERE collection = ? ORDER BY rowid`,
		collection,
	)
	if err != nil {
		return err
	}
	return decodeRows(rows, out)
}

// FindByID decodes one document into out, a pointer to a struct
func (s *SQLiteStore) FindByID(ctx context.Context, collection, id string, out interface{}) error {
	var data string
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), out)
}

// FindBy decodes the documents whose field equals value
func (s *SQLiteStore) FindBy(ctx context.Context, collection, field, value string, out interface{}) error {
	path, err := jsonPath(field)
	if err != nil {
		return err
	}

	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT data FROM documents
		WHERE collection = ? AND json_extract(data, ?) = ?
		ORDER BY rowid`,
		collection, path, value,
	)
	if err != nil {
		return err
	}
	return decodeRows(rows, out)
}

// Search decodes up to limit documents whose field contains term.
// LIKE is case-insensitive for ASCII and the term's wildcards are escaped.
func (s *SQLiteStore) Search(ctx context.Context, collection, field, term string, limit int, out interface{}) error {
	path, err := jsonPath(field)
	if err != nil {
		return err
	}

	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT data FROM documents
		WHERE collection = ? AND json_extract(data, ?) LIKE ? ESCAPE '\'
		ORDER BY rowid
		LIMIT ?`,
		collection, path, "%"+escapeLike(term)+"%", limit,
	)
	if err != nil {
		return err
	}
	return decodeRows(rows, out)
}

// Replace overwrites a stored document
func (s *SQLiteStore) Replace(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	result, err := s.db.Conn().ExecContext(ctx,
		`UPDATE documents SET data = ? WHERE collection = ? AND id = ?`,
		string(data), collection, id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}

// decodeRows joins the JSON documents into one array and decodes it in one go
func decodeRows(rows *sql.Rows, out interface{}) error {
	defer rows.Close()

	var buf strings.Builder
	buf.WriteByte('[')
	first := true
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		buf.WriteString(data)
		first = false
	}
	if err := rows.Err(); err != nil {
		return err
	}
	buf.WriteByte(']')

	return json.Unmarshal([]byte(buf.String()), out)
}

func jsonPath(field string) (string, error) {
	if field == "" {
		return "", fmt.Errorf("empty field name")
	}
	for _, r := range field {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "", fmt.Errorf("invalid field name %q", field)
		}
	}
	return "$." + field, nil
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
