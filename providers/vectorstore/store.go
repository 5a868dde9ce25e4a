// Package vectorstore implements the supplier-document similarity search
// backing the search_supplier_docs tool. Documents and their embedding
// vectors are persisted in SQLite; ranking is cosine similarity computed in
// process. The embedding model itself is pluggable via [Embedder].
package vectorstore

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	_ "modernc.org/sqlite"
)

// Document is one entry in the supplier qualification corpus.
type Document struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Result is a document scored against a query, most similar first when
// returned from Search.
type Result struct {
	Document
	Score float64 `json:"score"`
}

// Embedder converts text into a fixed-size vector. Implementations must be
// deterministic: the same text always yields the same vector.
type Embedder interface {
	Embed(text string) []float32
}

const (
	// MaxTopK caps how many results a single search may request.
	MaxTopK = 10

	// DefaultTopK is used when the caller asks for zero or fewer results.
	DefaultTopK = 3
)

// Store is a SQLite-backed document store with similarity search.
type Store struct {
	db       *sql.DB
	embedder Embedder
}

// Open opens (or creates) the store at path and runs migrations.
// Close must be called when the store is no longer needed.
func Open(path string, embedder Embedder) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("vectorstore: embedder must not be nil")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("vectorstore: open: %w", err)
	}

	// WAL keeps concurrent readers cheap.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("vectorstore: wal: %w", err)
	}

	s := &Store{db: db, embedder: embedder}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id        TEXT PRIMARY KEY,
			content   TEXT NOT NULL,
			metadata  TEXT NOT NULL DEFAULT '{}',
			embedding BLOB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("vectorstore: migrate: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed replaces the whole collection with docs. Seeding is idempotent:
// running it twice leaves the store in the same state.
func (s *Store) Seed(ctx context.Context, docs []Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("vectorstore: seed: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("vectorstore: seed: clear: %w", err)
	}

	for _, doc := range docs {
		metadata, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("vectorstore: seed: metadata for %q: %w", doc.ID, err)
		}

		embedding := encodeVector(s.embedder.Embed(doc.Content))

		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (id, content, metadata, embedding)
			VALUES (?, ?, ?, ?)
		`, doc.ID, doc.Content, string(metadata), embedding)
		if err != nil {
			return fmt.Errorf("vectorstore: seed: insert %q: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("vectorstore: seed: commit: %w", err)
	}
	return nil
}

// Count returns the number of documents stored.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("vectorstore: count: %w", err)
	}
	return n, nil
}

// Search returns the topK documents most similar to query, most similar
// first. topK is clamped to [1, MaxTopK]; zero or negative values fall back
// to DefaultTopK.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	queryVector := s.embedder.Embed(query)

	rows, err := s.db.QueryContext(ctx, `SELECT id, content, metadata, embedding FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("vectorstore: search: %w", err)
	}
	defer rows.Close()

	results := make([]Result, 0)
	for rows.Next() {
		var (
			doc      Document
			metadata string
			blob     []byte
		)
		if err := rows.Scan(&doc.ID, &doc.Content, &metadata, &blob); err != nil {
			return nil, fmt.Errorf("vectorstore: search: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("vectorstore: search: metadata for %q: %w", doc.ID, err)
		}

		results = append(results, Result{
			Document: doc,
			Score:    cosineSimilarity(queryVector, decodeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vectorstore: search: rows: %w", err)
	}

	// Ties break on document ID so result order is stable.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// encodeVector packs a float32 vector into a little-endian blob.
func encodeVector(vector []float32) []byte {
	blob := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

func decodeVector(blob []byte) []float32 {
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
