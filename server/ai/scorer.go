package ai

import (
	"context"
	"math"
	"strings"
	"sync"
)

// Scorer computes a similarity score in [0, 1] for a pair of texts.
type Scorer interface {
	// Score returns the cosine similarity between the embeddings of a and b.
	Score(ctx context.Context, a, b string) (float64, error)

	// Vector returns the embedding for text, computing it if not cached.
	Vector(ctx context.Context, text string) ([]float32, error)

	// Model returns the underlying embedding model identifier.
	Model() string
}

// CachingScorer wraps an EmbeddingService and memoizes vectors per
// normalized text for the lifetime of the process. Equal inputs always
// produce the same score within a run.
type CachingScorer struct {
	embedder EmbeddingService

	mu    sync.RWMutex
	cache map[string][]float32
}

// NewCachingScorer creates a scorer on top of the given embedding service.
func NewCachingScorer(embedder EmbeddingService) *CachingScorer {
	return &CachingScorer{
		embedder: embedder,
		cache:    make(map[string][]float32),
	}
}

// Normalize lowercases and trims text so that case and surrounding
// whitespace do not affect scoring.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func (s *CachingScorer) Model() string {
	return s.embedder.Model()
}

// Vector returns the embedding for text. Empty or whitespace-only text
// yields a nil vector, which scores 0 against everything.
func (s *CachingScorer) Vector(ctx context.Context, text string) ([]float32, error) {
	key := Normalize(text)
	if key == "" {
		return nil, nil
	}

	s.mu.RLock()
	vector, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return vector, nil
	}

	vector, err := s.embedder.Embed(ctx, key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = vector
	s.mu.Unlock()
	return vector, nil
}

// VectorBatch returns embeddings for texts, fetching only the uncached
// ones in a single request.
func (s *CachingScorer) VectorBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	s.mu.RLock()
	for i, text := range texts {
		key := Normalize(text)
		if key == "" {
			continue
		}
		if vector, ok := s.cache[key]; ok {
			vectors[i] = vector
		} else {
			missing = append(missing, key)
			missingIdx = append(missingIdx, i)
		}
	}
	s.mu.RUnlock()

	if len(missing) == 0 {
		return vectors, nil
	}

	fetched, err := s.embedder.EmbedBatch(ctx, missing)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for j, vector := range fetched {
		s.cache[missing[j]] = vector
		vectors[missingIdx[j]] = vector
	}
	s.mu.Unlock()
	return vectors, nil
}

// Seed primes the cache with a precomputed vector for text.
func (s *CachingScorer) Seed(text string, vector []float32) {
	key := Normalize(text)
	if key == "" {
		return
	}
	s.mu.Lock()
	s.cache[key] = vector
	s.mu.Unlock()
}

func (s *CachingScorer) Score(ctx context.Context, a, b string) (float64, error) {
	va, err := s.Vector(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := s.Vector(ctx, b)
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(va, vb), nil
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
