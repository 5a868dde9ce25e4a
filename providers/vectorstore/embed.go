package vectorstore

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashingEmbedder is a deterministic, dependency-free embedding function:
// each token is hashed into one of Dims buckets and the resulting
// bag-of-words vector is L2-normalised. It is a stand-in for a real sentence
// embedding model, adequate for the bundled mock corpus where queries share
// vocabulary with the documents they should match.
type HashingEmbedder struct {
	// Dims is the vector dimensionality. Zero means DefaultDims.
	Dims int
}

// DefaultDims is the vector size used when HashingEmbedder.Dims is zero.
const DefaultDims = 256

// Embed converts text into an L2-normalised term-frequency vector.
func (e HashingEmbedder) Embed(text string) []float32 {
	dims := e.Dims
	if dims <= 0 {
		dims = DefaultDims
	}

	vector := make([]float32, dims)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vector[h.Sum32()%uint32(dims)]++
	}

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vector
	}

	scale := float32(1 / math.Sqrt(norm))
	for i := range vector {
		vector[i] *= scale
	}
	return vector
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
