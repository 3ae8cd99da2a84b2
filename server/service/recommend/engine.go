// Package recommend recomputes the per-user course recommendation set
// whenever the user's interests change.
package recommend

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/smartacademy/academy/internal/errors"
	"github.com/smartacademy/academy/internal/profile"
	"github.com/smartacademy/academy/plugin/notify"
	"github.com/smartacademy/academy/server/ai"
	"github.com/smartacademy/academy/store"
)

// embedConcurrency bounds parallel course embedding work per recompute.
const embedConcurrency = 4

// Engine derives recommendations from the full course catalog and a user's
// current interest set. Each recompute replaces the user's previous set
// atomically; a failed run leaves the prior set untouched.
type Engine struct {
	store    *store.Store
	scorer   *ai.CachingScorer
	notifier notify.Notifier

	scoringField string
	threshold    float64

	// userLocks serializes recomputes per user. Different users run in
	// parallel.
	userLocks sync.Map // int32 -> *sync.Mutex
}

// NewEngine creates a recommendation engine. A nil notifier disables
// notifications.
func NewEngine(st *store.Store, scorer *ai.CachingScorer, notifier notify.Notifier, p *profile.Profile) *Engine {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &Engine{
		store:        st,
		scorer:       scorer,
		notifier:     notifier,
		scoringField: p.ScoringField,
		threshold:    p.SimilarityThreshold,
	}
}

// CourseText returns the text a course is scored on for the given field.
func CourseText(course *store.Course, scoringField string) string {
	if scoringField == profile.ScoringFieldTitle {
		return course.Title
	}
	if course.Description == "" {
		return course.Title
	}
	return course.Title + " " + course.Description
}

// Recompute rebuilds the recommendation set of one user from scratch.
// Returns the new set ordered by score descending, course id ascending.
func (e *Engine) Recompute(ctx context.Context, userID int32) ([]*store.Recommendation, error) {
	user, err := e.store.GetUser(ctx, &store.FindUser{ID: &userID})
	if err != nil {
		return nil, err
	}

	unlock := e.lockUser(userID)
	defer unlock()

	interests, err := e.store.ListInterests(ctx, &store.FindInterest{UserID: &userID})
	if err != nil {
		return nil, errors.StorageFailure("failed to list interests", err)
	}

	// No interests means no recommendations. Clear and succeed.
	if len(interests) == 0 {
		if err := e.store.DeleteUserRecommendations(ctx, userID); err != nil {
			return nil, errors.StorageFailure("failed to clear recommendations", err)
		}
		e.notifyLines(ctx, user, nil)
		return []*store.Recommendation{}, nil
	}

	interestVectors, err := e.embedInterests(ctx, interests)
	if err != nil {
		return nil, errors.ScoringUnavailable("failed to embed interests", err)
	}

	courses, err := e.store.ListCourses(ctx, &store.FindCourse{})
	if err != nil {
		return nil, errors.StorageFailure("failed to list courses", err)
	}

	courseVectors, err := e.embedCourses(ctx, courses)
	if err != nil {
		return nil, errors.ScoringUnavailable("failed to embed courses", err)
	}

	recommendations := make([]*store.Recommendation, 0, len(courses))
	for _, course := range courses {
		vector, ok := courseVectors[course.ID]
		if !ok {
			continue
		}
		score := maxSimilarity(interestVectors, vector)
		if score >= e.threshold {
			recommendations = append(recommendations, &store.Recommendation{
				UserID:          userID,
				CourseID:        course.ID,
				SimilarityScore: score,
			})
		}
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].SimilarityScore != recommendations[j].SimilarityScore {
			return recommendations[i].SimilarityScore > recommendations[j].SimilarityScore
		}
		return recommendations[i].CourseID < recommendations[j].CourseID
	})

	if err := e.store.ReplaceUserRecommendations(ctx, userID, recommendations); err != nil {
		return nil, errors.StorageFailure("failed to replace recommendations", err)
	}

	e.notifyCourses(ctx, user, courses, recommendations)
	return recommendations, nil
}

// embedInterests embeds each distinct normalized interest text once.
func (e *Engine) embedInterests(ctx context.Context, interests []*store.Interest) ([][]float32, error) {
	seen := make(map[string]bool, len(interests))
	texts := make([]string, 0, len(interests))
	for _, interest := range interests {
		key := ai.Normalize(interest.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		texts = append(texts, key)
	}

	vectors, err := e.scorer.VectorBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// embedCourses returns an embedding per course id. Persisted embeddings are
// reused when the driver stores them; otherwise every vector is computed in
// process, with bounded concurrency.
func (e *Engine) embedCourses(ctx context.Context, courses []*store.Course) (map[int32][]float32, error) {
	vectors := make(map[int32][]float32, len(courses))
	persisted, supported := e.loadPersistedEmbeddings(ctx)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for _, course := range courses {
		text := CourseText(course, e.scoringField)
		if ai.Normalize(text) == "" {
			continue
		}

		if vector, ok := persisted[course.ID]; ok {
			mu.Lock()
			vectors[course.ID] = vector
			mu.Unlock()
			e.scorer.Seed(text, vector)
			continue
		}

		g.Go(func() error {
			vector, err := e.scorer.Vector(gctx, text)
			if err != nil {
				return err
			}
			mu.Lock()
			vectors[course.ID] = vector
			mu.Unlock()

			if supported {
				if _, err := e.store.UpsertCourseEmbedding(gctx, &store.CourseEmbedding{
					CourseID:     course.ID,
					ScoringField: e.scoringField,
					Model:        e.scorer.Model(),
					Embedding:    vector,
				}); err != nil {
					slog.Warn("failed to persist course embedding",
						slog.Int("course_id", int(course.ID)),
						slog.String("error", err.Error()))
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// loadPersistedEmbeddings fetches stored vectors for the active scoring
// field and model. Drivers without vector storage report unsupported, which
// switches the engine to in-process computation.
func (e *Engine) loadPersistedEmbeddings(ctx context.Context) (map[int32][]float32, bool) {
	model := e.scorer.Model()
	list, err := e.store.ListCourseEmbeddings(ctx, &store.FindCourseEmbedding{
		ScoringField: &e.scoringField,
		Model:        &model,
	})
	if err != nil {
		if !errors.Is(err, store.ErrVectorStorageUnsupported) {
			slog.Warn("failed to load persisted course embeddings", slog.String("error", err.Error()))
		}
		return nil, false
	}

	vectors := make(map[int32][]float32, len(list))
	for _, embedding := range list {
		vectors[embedding.CourseID] = embedding.Embedding
	}
	return vectors, true
}

// maxSimilarity returns the best cosine score of the course vector against
// all interest vectors.
func maxSimilarity(interestVectors [][]float32, courseVector []float32) float64 {
	var best float64
	for _, vector := range interestVectors {
		if score := ai.CosineSimilarity(vector, courseVector); score > best {
			best = score
		}
	}
	return best
}

func (e *Engine) notifyCourses(ctx context.Context, user *store.User, courses []*store.Course, recommendations []*store.Recommendation) {
	titles := make(map[int32]string, len(courses))
	for _, course := range courses {
		titles[course.ID] = course.Title
	}

	lines := make([]notify.Recommendation, 0, len(recommendations))
	for _, recommendation := range recommendations {
		lines = append(lines, notify.Recommendation{
			CourseTitle:     titles[recommendation.CourseID],
			SimilarityScore: recommendation.SimilarityScore,
		})
	}
	e.notifyLines(ctx, user, lines)
}

func (e *Engine) notifyLines(ctx context.Context, user *store.User, lines []notify.Recommendation) {
	if err := e.notifier.NotifyRecommendations(ctx, user.Email, user.FirstName, lines); err != nil {
		slog.Warn("failed to notify user about recommendations",
			slog.Int("user_id", int(user.ID)),
			slog.String("error", err.Error()))
	}
}

func (e *Engine) lockUser(userID int32) func() {
	value, _ := e.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
