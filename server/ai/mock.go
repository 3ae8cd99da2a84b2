package ai

import (
	"context"
	"hash/fnv"
	"math"
	"sync"
)

// MockEmbeddingService is a deterministic in-process embedder for tests.
// An optional EmbedFunc overrides the default behavior. Safe for
// concurrent use.
type MockEmbeddingService struct {
	EmbedFunc func(ctx context.Context, text string) ([]float32, error)

	mu    sync.Mutex
	calls int
}

// NewMockEmbeddingService returns a mock that derives a stable unit vector
// from the text so equal texts always embed identically.
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}
	return deterministicVector(text), nil
}

// CallCount reports how many Embed calls the mock has served.
func (m *MockEmbeddingService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (m *MockEmbeddingService) Model() string {
	return "mock-embedding"
}

// deterministicVector hashes the text into a fixed-size unit vector.
// Identical texts map to identical vectors; different texts are very
// unlikely to collide.
func deterministicVector(text string) []float32 {
	const dims = 16
	vector := make([]float32, dims)
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()
	var norm float64
	for i := 0; i < dims; i++ {
		seed = seed*6364136223846793005 + 1442695040888963407
		v := float32(int32(seed>>32)) / float32(math.MaxInt32)
		vector[i] = v
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vector {
			vector[i] = float32(float64(vector[i]) / norm)
		}
	}
	return vector
}
