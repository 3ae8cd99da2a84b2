package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smartacademy/academy/internal/errors"
	"github.com/smartacademy/academy/store"
)

func seedUser(ctx context.Context, t *testing.T, st *store.Store, uid string) *store.User {
	t.Helper()
	user, err := st.CreateUser(ctx, &store.User{
		UID:   uid,
		Email: uid + "@example.com",
		Role:  store.RoleUser,
	})
	require.NoError(t, err)
	return user
}

func seedCourse(ctx context.Context, t *testing.T, st *store.Store, title string) *store.Course {
	t.Helper()
	course, err := st.CreateCourse(ctx, &store.Course{Title: title})
	require.NoError(t, err)
	return course
}

func TestReplaceUserInterests(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)
	user := seedUser(ctx, t, st, "alice")

	interests, err := st.ReplaceUserInterests(ctx, user.ID, []string{"  machine learning ", "pottery"})
	require.NoError(t, err)
	require.Len(t, interests, 2)
	require.Equal(t, "machine learning", interests[0].Text)

	// A second replace fully supersedes the first.
	interests, err = st.ReplaceUserInterests(ctx, user.ID, []string{"astronomy"})
	require.NoError(t, err)
	require.Len(t, interests, 1)

	listed, err := st.ListInterests(ctx, &store.FindInterest{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "astronomy", listed[0].Text)
}

func TestReplaceUserInterestsRejectsEmptyText(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)
	user := seedUser(ctx, t, st, "alice")

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"valid", "   "})
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument))
}

func TestReplaceUserRecommendationsAtomicity(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)
	user := seedUser(ctx, t, st, "alice")
	course := seedCourse(ctx, t, st, "Machine Learning")

	err := st.ReplaceUserRecommendations(ctx, user.ID, []*store.Recommendation{
		{CourseID: course.ID, SimilarityScore: 0.9},
	})
	require.NoError(t, err)

	// A replacement containing a row that violates the course foreign key
	// must fail without touching the existing set.
	err = st.ReplaceUserRecommendations(ctx, user.ID, []*store.Recommendation{
		{CourseID: course.ID, SimilarityScore: 0.8},
		{CourseID: 99999, SimilarityScore: 0.7},
	})
	require.Error(t, err)

	stored, err := st.ListRecommendations(ctx, &store.FindRecommendation{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, course.ID, stored[0].CourseID)
	require.Equal(t, 0.9, stored[0].SimilarityScore)
}

func TestListRecommendationsOrdering(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)
	user := seedUser(ctx, t, st, "alice")
	a := seedCourse(ctx, t, st, "A")
	b := seedCourse(ctx, t, st, "B")
	c := seedCourse(ctx, t, st, "C")

	err := st.ReplaceUserRecommendations(ctx, user.ID, []*store.Recommendation{
		{CourseID: a.ID, SimilarityScore: 0.7},
		{CourseID: b.ID, SimilarityScore: 0.9},
		{CourseID: c.ID, SimilarityScore: 0.7},
	})
	require.NoError(t, err)

	stored, err := st.ListRecommendations(ctx, &store.FindRecommendation{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, stored, 3)
	require.Equal(t, b.ID, stored[0].CourseID)
	// Equal scores order by course id ascending.
	require.Equal(t, a.ID, stored[1].CourseID)
	require.Equal(t, c.ID, stored[2].CourseID)
}

func TestDeleteCourseCascades(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)
	user := seedUser(ctx, t, st, "alice")
	course := seedCourse(ctx, t, st, "Machine Learning")

	err := st.ReplaceUserRecommendations(ctx, user.ID, []*store.Recommendation{
		{CourseID: course.ID, SimilarityScore: 0.9},
	})
	require.NoError(t, err)

	require.NoError(t, st.DeleteCourse(ctx, &store.DeleteCourse{ID: course.ID}))

	stored, err := st.ListRecommendations(ctx, &store.FindRecommendation{UserID: &user.ID})
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)
	user := seedUser(ctx, t, st, "alice")

	_, err := st.ReplaceUserInterests(ctx, user.ID, []string{"pottery"})
	require.NoError(t, err)

	require.NoError(t, st.DeleteUser(ctx, &store.DeleteUser{ID: user.ID}))

	interests, err := st.ListInterests(ctx, &store.FindInterest{UserID: &user.ID})
	require.NoError(t, err)
	require.Empty(t, interests)
}

func TestGetUserNotFound(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)

	missing := int32(4242)
	_, err := st.GetUser(ctx, &store.FindUser{ID: &missing})
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestCourseEmbeddingUnsupportedOnSQLite(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)
	course := seedCourse(ctx, t, st, "Machine Learning")

	_, err := st.UpsertCourseEmbedding(ctx, &store.CourseEmbedding{
		CourseID:     course.ID,
		ScoringField: "title",
		Model:        "test",
		Embedding:    []float32{1, 0},
	})
	require.ErrorIs(t, err, store.ErrVectorStorageUnsupported)

	_, err = st.ListCourseEmbeddings(ctx, &store.FindCourseEmbedding{})
	require.ErrorIs(t, err, store.ErrVectorStorageUnsupported)

	// Deleting embeddings is a no-op on sqlite so course deletion works.
	require.NoError(t, st.DeleteCourseEmbedding(ctx, course.ID))
}
