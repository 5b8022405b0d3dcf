package embedding

import (
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS embeddings (
	title      TEXT PRIMARY KEY,
	title_vec  BLOB NOT NULL,
	desc_vec   BLOB NOT NULL,
	body_vec   BLOB NOT NULL,
	type_vec   BLOB NOT NULL,
	comm_vec   BLOB NOT NULL,
	hash       TEXT NOT NULL,
	indexed_at TEXT NOT NULL
);
`

// Record is one persisted embedding row.
type Record struct {
	Title     string
	Vectors   Vectors
	Hash      string
	IndexedAt time.Time
}

// Store persists embedding records in an embedded relational store keyed
// by note title, enabling incremental rebuilds via content-hash comparison.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the embedding database at dsn and applies
// its schema.
func OpenStore(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("embedding: open store: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("embedding: ping store: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("embedding: apply schema: %w", err)
	}
	return &Store{db: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// ContentHash is SHA-256 over title || description || body, the dirty-check
// key for incremental builds.
func ContentHash(title, description, body string) string {
	h := sha256.New()
	h.Write([]byte(title))
	h.Write([]byte(description))
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}

// Hash looks up the stored content hash for a title; ok is false if no row
// exists yet.
func (s *Store) Hash(title string) (hash string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT hash FROM embeddings WHERE title = ?`, title)
	err = row.Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("embedding: read hash: %w", err)
	}
	return hash, true, nil
}

// Upsert writes or replaces the embedding row for title.
func (s *Store) Upsert(title string, v Vectors, hash string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO embeddings (title, title_vec, desc_vec, body_vec, type_vec, comm_vec, hash, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			title_vec=excluded.title_vec, desc_vec=excluded.desc_vec, body_vec=excluded.body_vec,
			type_vec=excluded.type_vec, comm_vec=excluded.comm_vec, hash=excluded.hash, indexed_at=excluded.indexed_at
	`, title, encodeVec(v.Title), encodeVec(v.Desc), encodeVec(v.Body), encodeVec(v.Type), encodeVec(v.Community),
		hash, at.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("embedding: upsert %q: %w", title, err)
	}
	return nil
}

// Get reads the stored record for a title, if any.
func (s *Store) Get(title string) (*Record, error) {
	row := s.db.QueryRow(`SELECT title_vec, desc_vec, body_vec, type_vec, comm_vec, hash, indexed_at FROM embeddings WHERE title = ?`, title)
	var titleVec, descVec, bodyVec, typeVec, commVec []byte
	var hash, indexedAt string
	if err := row.Scan(&titleVec, &descVec, &bodyVec, &typeVec, &commVec, &hash, &indexedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("embedding: get %q: %w", title, err)
	}
	ts, _ := time.Parse(time.RFC3339, indexedAt)
	return &Record{
		Title: title,
		Vectors: Vectors{
			Title:     decodeVec(titleVec),
			Desc:      decodeVec(descVec),
			Body:      decodeVec(bodyVec),
			Type:      decodeVec(typeVec),
			Community: decodeVec(commVec),
		},
		Hash:      hash,
		IndexedAt: ts,
	}, nil
}

// All returns every persisted record, for query-time loading.
func (s *Store) All() ([]*Record, error) {
	rows, err := s.db.Query(`SELECT title, title_vec, desc_vec, body_vec, type_vec, comm_vec, hash, indexed_at FROM embeddings`)
	if err != nil {
		return nil, fmt.Errorf("embedding: list: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var title, hash, indexedAt string
		var titleVec, descVec, bodyVec, typeVec, commVec []byte
		if err := rows.Scan(&title, &titleVec, &descVec, &bodyVec, &typeVec, &commVec, &hash, &indexedAt); err != nil {
			return nil, fmt.Errorf("embedding: scan: %w", err)
		}
		ts, _ := time.Parse(time.RFC3339, indexedAt)
		out = append(out, &Record{
			Title: title,
			Vectors: Vectors{
				Title:     decodeVec(titleVec),
				Desc:      decodeVec(descVec),
				Body:      decodeVec(bodyVec),
				Type:      decodeVec(typeVec),
				Community: decodeVec(commVec),
			},
			Hash:      hash,
			IndexedAt: ts,
		})
	}
	return out, rows.Err()
}

// DeleteMissing removes rows whose title is not present in keep, an
// optional GC step run after a full rebuild.
func (s *Store) DeleteMissing(keep map[string]bool) error {
	rows, err := s.db.Query(`SELECT title FROM embeddings`)
	if err != nil {
		return fmt.Errorf("embedding: gc scan: %w", err)
	}
	var stale []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			rows.Close()
			return err
		}
		if !keep[title] {
			stale = append(stale, title)
		}
	}
	rows.Close()
	for _, title := range stale {
		if _, err := s.db.Exec(`DELETE FROM embeddings WHERE title = ?`, title); err != nil {
			return fmt.Errorf("embedding: gc delete %q: %w", title, err)
		}
	}
	return nil
}

func encodeVec(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVec(buf []byte) []float32 {
	n := len(buf) / 4
	v := make([]float32, n)
	for i := 0; i < n; i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v
}
