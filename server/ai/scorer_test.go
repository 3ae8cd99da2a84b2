package ai

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"mismatched lengths", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "machine learning", Normalize("  Machine Learning "))
	require.Equal(t, "", Normalize("   "))
}

func TestCachingScorerMemoizes(t *testing.T) {
	ctx := context.Background()
	mock := NewMockEmbeddingService()
	scorer := NewCachingScorer(mock)

	first, err := scorer.Vector(ctx, "Machine Learning")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Same text modulo case and whitespace must not re-embed.
	second, err := scorer.Vector(ctx, "  machine learning ")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, mock.CallCount())
}

func TestCachingScorerEmptyText(t *testing.T) {
	ctx := context.Background()
	mock := NewMockEmbeddingService()
	scorer := NewCachingScorer(mock)

	vector, err := scorer.Vector(ctx, "   ")
	require.NoError(t, err)
	require.Nil(t, vector)
	require.Zero(t, mock.CallCount())

	score, err := scorer.Score(ctx, "", "anything")
	require.NoError(t, err)
	require.Zero(t, score)
}

func TestCachingScorerIdenticalTextsScoreOne(t *testing.T) {
	ctx := context.Background()
	scorer := NewCachingScorer(NewMockEmbeddingService())

	score, err := scorer.Score(ctx, "Data Science", "data science")
	require.NoError(t, err)
	require.InDelta(t, 1.0, score, 1e-6)
}

func TestCachingScorerDeterministic(t *testing.T) {
	ctx := context.Background()
	scorer := NewCachingScorer(NewMockEmbeddingService())

	a, err := scorer.Score(ctx, "databases", "machine learning")
	require.NoError(t, err)
	b, err := scorer.Score(ctx, "databases", "machine learning")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestVectorBatchFetchesOnlyMissing(t *testing.T) {
	ctx := context.Background()
	mock := NewMockEmbeddingService()
	scorer := NewCachingScorer(mock)

	_, err := scorer.Vector(ctx, "physics")
	require.NoError(t, err)
	require.Equal(t, 1, mock.CallCount())

	vectors, err := scorer.VectorBatch(ctx, []string{"physics", "chemistry", ""})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	require.NotNil(t, vectors[0])
	require.NotNil(t, vectors[1])
	require.Nil(t, vectors[2])
	require.Equal(t, 2, mock.CallCount())
}

func TestNewEmbeddingServiceValidation(t *testing.T) {
	_, err := NewEmbeddingService(&EmbeddingConfig{Model: "text-embedding-3-small"})
	require.Error(t, err)

	_, err = NewEmbeddingService(&EmbeddingConfig{APIKey: "test-key"})
	require.Error(t, err)

	svc, err := NewEmbeddingService(&EmbeddingConfig{
		APIKey: "test-key",
		Model:  "text-embedding-3-small",
	})
	require.NoError(t, err)
	require.Equal(t, "text-embedding-3-small", svc.Model())
}

func TestMockEmbeddingServiceConcurrentEmbeds(t *testing.T) {
	mock := NewMockEmbeddingService()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mock.Embed(context.Background(), "distributed systems")
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 8, mock.CallCount())
}
