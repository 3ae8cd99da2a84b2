package recommend

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	acerrors "github.com/smartacademy/academy/internal/errors"
	"github.com/smartacademy/academy/internal/profile"
	"github.com/smartacademy/academy/plugin/notify"
	"github.com/smartacademy/academy/server/ai"
	"github.com/smartacademy/academy/store"
	storetest "github.com/smartacademy/academy/store/test"
)

// dictionaryEmbedder resolves normalized texts against a fixed vector table.
type dictionaryEmbedder struct {
	vectors map[string][]float32
}

func (d *dictionaryEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vector, ok := d.vectors[text]
	if !ok {
		return nil, errors.Errorf("no vector for %q", text)
	}
	return vector, nil
}

func (d *dictionaryEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := d.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (d *dictionaryEmbedder) Model() string { return "dictionary" }

// capturingNotifier records the last notification instead of sending it.
type capturingNotifier struct {
	email string
	lines []notify.Recommendation
	calls int
	err   error
}

func (n *capturingNotifier) NotifyRecommendations(ctx context.Context, email, name string, lines []notify.Recommendation) error {
	n.calls++
	n.email = email
	n.lines = lines
	return n.err
}

func testProfile(scoringField string, threshold float64) *profile.Profile {
	return &profile.Profile{
		Mode:                "test",
		ScoringField:        scoringField,
		SimilarityThreshold: threshold,
	}
}

func createUser(ctx context.Context, t *testing.T, st *store.Store, email string) *store.User {
	t.Helper()
	user, err := st.CreateUser(ctx, &store.User{
		UID:       email,
		FirstName: "Test",
		Email:     email,
		Role:      store.RoleUser,
	})
	require.NoError(t, err)
	return user
}

func createCourse(ctx context.Context, t *testing.T, st *store.Store, title, description string) *store.Course {
	t.Helper()
	course, err := st.CreateCourse(ctx, &store.Course{Title: title, Description: description})
	require.NoError(t, err)
	return course
}

func TestRecomputeUnknownUser(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	scorer := ai.NewCachingScorer(&dictionaryEmbedder{})
	engine := NewEngine(st, scorer, nil, testProfile(profile.ScoringFieldTitle, 0.5))

	_, err := engine.Recompute(ctx, 9999)
	require.Error(t, err)
	require.True(t, acerrors.IsCode(err, acerrors.ErrCodeNotFound))
}

func TestRecomputeEmptyInterestsClears(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	course := createCourse(ctx, t, st, "Machine Learning", "")

	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"machine learning": {3, 4},
	}}
	notifier := &capturingNotifier{}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), notifier, testProfile(profile.ScoringFieldTitle, 0.5))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"machine learning"})
	require.NoError(t, err)
	recommendations, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	require.Equal(t, course.ID, recommendations[0].CourseID)

	// Removing all interests clears the set on the next recompute.
	_, err = st.ReplaceUserInterests(ctx, user.ID, nil)
	require.NoError(t, err)
	recommendations, err = engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, recommendations)

	stored, err := st.ListRecommendations(ctx, &store.FindRecommendation{UserID: &user.ID})
	require.NoError(t, err)
	require.Empty(t, stored)
	require.Equal(t, 2, notifier.calls)
	require.Empty(t, notifier.lines)
}

func TestRecomputeThresholdInclusive(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	exact := createCourse(ctx, t, st, "Machine Learning", "")
	createCourse(ctx, t, st, "Pottery", "")

	// Identical vectors score exactly 1.0; the inclusive threshold keeps
	// the exact match even at threshold 1.0.
	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"machine learning": {3, 4},
		"pottery":          {4, -3},
	}}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), nil, testProfile(profile.ScoringFieldTitle, 1.0))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"Machine Learning"})
	require.NoError(t, err)

	recommendations, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	require.Equal(t, exact.ID, recommendations[0].CourseID)
	require.Equal(t, 1.0, recommendations[0].SimilarityScore)
}

func TestRecomputeNegativeScoresExcluded(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	orthogonal := createCourse(ctx, t, st, "Pottery", "")
	createCourse(ctx, t, st, "Silence", "")

	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"machine learning": {1, 0},
		"pottery":          {0, 1},  // cosine 0 against the interest
		"silence":          {-1, 0}, // cosine -1
	}}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), nil, testProfile(profile.ScoringFieldTitle, 0))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"machine learning"})
	require.NoError(t, err)

	recommendations, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	require.Equal(t, orthogonal.ID, recommendations[0].CourseID)
	require.Equal(t, 0.0, recommendations[0].SimilarityScore)
}

func TestRecomputeOrderingAndTies(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	high := createCourse(ctx, t, st, "Deep Learning", "")
	tieA := createCourse(ctx, t, st, "Statistics", "")
	tieB := createCourse(ctx, t, st, "Probability", "")

	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"ai":            {1, 0},
		"deep learning": {1, 0},
		"statistics":    {1, 1},
		"probability":   {1, 1}, // same score as statistics
	}}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), nil, testProfile(profile.ScoringFieldTitle, 0.5))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"ai"})
	require.NoError(t, err)

	recommendations, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recommendations, 3)
	require.Equal(t, high.ID, recommendations[0].CourseID)
	require.Equal(t, tieA.ID, recommendations[1].CourseID)
	require.Equal(t, tieB.ID, recommendations[2].CourseID)
	for i := 1; i < len(recommendations); i++ {
		require.LessOrEqual(t, recommendations[i].SimilarityScore, recommendations[i-1].SimilarityScore)
	}

	// The stored order matches the returned order.
	stored, err := st.ListRecommendations(ctx, &store.FindRecommendation{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for i, recommendation := range recommendations {
		require.Equal(t, recommendation.CourseID, stored[i].CourseID)
	}
}

func TestRecomputeMaxOverInterests(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	course := createCourse(ctx, t, st, "Databases", "")

	// Two interests; only the second matches the course. The max wins.
	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"gardening": {0, 1},
		"sql":       {3, 4},
		"databases": {3, 4},
	}}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), nil, testProfile(profile.ScoringFieldTitle, 0.9))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"gardening", "sql"})
	require.NoError(t, err)

	recommendations, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	require.Equal(t, course.ID, recommendations[0].CourseID)
	require.Equal(t, 1.0, recommendations[0].SimilarityScore)
}

func TestRecomputeScoringFailureKeepsPriorSet(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	course := createCourse(ctx, t, st, "Machine Learning", "")

	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"machine learning": {3, 4},
	}}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), nil, testProfile(profile.ScoringFieldTitle, 0.5))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"machine learning"})
	require.NoError(t, err)
	_, err = engine.Recompute(ctx, user.ID)
	require.NoError(t, err)

	// The new interest has no vector, so scoring fails. A fresh scorer
	// avoids cache hits from the first run.
	_, err = st.ReplaceUserInterests(ctx, user.ID, []string{"unknown topic"})
	require.NoError(t, err)
	failing := NewEngine(st, ai.NewCachingScorer(embedder), nil, testProfile(profile.ScoringFieldTitle, 0.5))
	_, err = failing.Recompute(ctx, user.ID)
	require.Error(t, err)
	require.True(t, acerrors.IsCode(err, acerrors.ErrCodeScoringUnavailable))

	stored, err := st.ListRecommendations(ctx, &store.FindRecommendation{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, course.ID, stored[0].CourseID)
}

func TestRecomputeIdempotent(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	createCourse(ctx, t, st, "Machine Learning", "")
	createCourse(ctx, t, st, "Statistics", "")

	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"ai":               {1, 0},
		"machine learning": {1, 0},
		"statistics":       {1, 1},
	}}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), nil, testProfile(profile.ScoringFieldTitle, 0.5))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"ai"})
	require.NoError(t, err)

	first, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	second, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		require.Equal(t, first[i].CourseID, second[i].CourseID)
		require.Equal(t, first[i].SimilarityScore, second[i].SimilarityScore)
	}
}

func TestRecomputeNotificationFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	createCourse(ctx, t, st, "Machine Learning", "")

	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"machine learning": {3, 4},
	}}
	notifier := &capturingNotifier{err: errors.New("smtp down")}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), notifier, testProfile(profile.ScoringFieldTitle, 0.5))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"machine learning"})
	require.NoError(t, err)

	recommendations, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	require.Equal(t, 1, notifier.calls)
	require.Equal(t, "ada@example.com", notifier.email)
}

func TestRecomputeTitleDescriptionScoring(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	user := createUser(ctx, t, st, "ada@example.com")
	ml := createCourse(ctx, t, st, "Machine Learning", "Neural networks and optimization")
	createCourse(ctx, t, st, "Basket Weaving", "Traditional fiber crafts")

	embedder := &dictionaryEmbedder{vectors: map[string][]float32{
		"machine learning": {1, 0, 0},
		"machine learning neural networks and optimization": {0.9, 0.1, 0},
		"basket weaving traditional fiber crafts":           {0, 0, 1},
	}}
	notifier := &capturingNotifier{}
	engine := NewEngine(st, ai.NewCachingScorer(embedder), notifier, testProfile(profile.ScoringFieldTitleDescription, 0.55))

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"Machine Learning"})
	require.NoError(t, err)

	recommendations, err := engine.Recompute(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	require.Equal(t, ml.ID, recommendations[0].CourseID)
	require.Greater(t, recommendations[0].SimilarityScore, 0.55)

	require.Len(t, notifier.lines, 1)
	require.Equal(t, "Machine Learning", notifier.lines[0].CourseTitle)
}

func TestCourseText(t *testing.T) {
	course := &store.Course{Title: "Databases", Description: "Relational systems"}
	require.Equal(t, "Databases", CourseText(course, profile.ScoringFieldTitle))
	require.Equal(t, "Databases Relational systems", CourseText(course, profile.ScoringFieldTitleDescription))

	bare := &store.Course{Title: "Databases"}
	require.Equal(t, "Databases", CourseText(bare, profile.ScoringFieldTitleDescription))
}
