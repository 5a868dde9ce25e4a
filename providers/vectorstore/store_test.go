package vectorstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), HashingEmbedder{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenRequiresEmbedder(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	docs := SupplierDocuments()

	require.NoError(t, store.Seed(ctx, docs))
	require.NoError(t, store.Seed(ctx, docs))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(docs), count)
}

func TestSearchRankingAndClamp(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Seed(ctx, SupplierDocuments()))

	results, err := store.Search(ctx, "semiconductor chips MCU-2200 Shenzhen typhoon", 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	// Scores are sorted descending.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	// The TPA-001 profile shares nearly all query vocabulary and must rank
	// first.
	assert.Equal(t, "TPA-001", results[0].ID)

	// Zero or negative topK falls back to the default.
	results, err = store.Search(ctx, "logistics freight", 0)
	require.NoError(t, err)
	assert.Len(t, results, DefaultTopK)

	// Requests above the cap are clamped.
	results, err = store.Search(ctx, "supplier", 100)
	require.NoError(t, err)
	assert.Len(t, results, MaxTopK)
}

func TestSearchReturnsMetadata(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Seed(ctx, SupplierDocuments()))

	results, err := store.Search(ctx, "precision resistors Munich Germany", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ECG-002", results[0].ID)
	assert.Equal(t, "Europe", results[0].Metadata["region"])
}

func TestHashingEmbedderDeterministic(t *testing.T) {
	e := HashingEmbedder{}
	a := e.Embed("supply chain disruption")
	b := e.Embed("supply chain disruption")
	assert.Equal(t, a, b)
	assert.Len(t, a, DefaultDims)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}

func TestVectorRoundTrip(t *testing.T) {
	v := []float32{0.25, -1.5, 3.75}
	assert.Equal(t, v, decodeVector(encodeVector(v)))
}
