package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smartacademy/academy/store"
	storetest "github.com/smartacademy/academy/store/test"
)

func TestInterestFrequency(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	reporter := NewReporter(st)

	alice, err := st.CreateUser(ctx, &store.User{UID: "alice", Email: "alice@example.com", Role: store.RoleUser})
	require.NoError(t, err)
	bob, err := st.CreateUser(ctx, &store.User{UID: "bob", Email: "bob@example.com", Role: store.RoleUser})
	require.NoError(t, err)

	_, err = st.ReplaceUserInterests(ctx, alice.ID, []string{"machine learning", "pottery"})
	require.NoError(t, err)
	_, err = st.ReplaceUserInterests(ctx, bob.ID, []string{"machine learning"})
	require.NoError(t, err)

	frequencies, err := reporter.InterestFrequency(ctx)
	require.NoError(t, err)
	require.Len(t, frequencies, 2)
	require.Equal(t, "machine learning", frequencies[0].Label)
	require.EqualValues(t, 2, frequencies[0].Count)
	require.Equal(t, "pottery", frequencies[1].Label)
	require.EqualValues(t, 1, frequencies[1].Count)
}

func TestInterestFrequencyCaseSensitive(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	reporter := NewReporter(st)

	alice, err := st.CreateUser(ctx, &store.User{UID: "alice", Email: "alice@example.com", Role: store.RoleUser})
	require.NoError(t, err)
	bob, err := st.CreateUser(ctx, &store.User{UID: "bob", Email: "bob@example.com", Role: store.RoleUser})
	require.NoError(t, err)

	// Texts differing only in case count separately.
	_, err = st.ReplaceUserInterests(ctx, alice.ID, []string{"Pottery"})
	require.NoError(t, err)
	_, err = st.ReplaceUserInterests(ctx, bob.ID, []string{"pottery"})
	require.NoError(t, err)

	frequencies, err := reporter.InterestFrequency(ctx)
	require.NoError(t, err)
	require.Len(t, frequencies, 2)
}

func TestRecommendationFrequency(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	reporter := NewReporter(st)

	alice, err := st.CreateUser(ctx, &store.User{UID: "alice", Email: "alice@example.com", Role: store.RoleUser})
	require.NoError(t, err)
	bob, err := st.CreateUser(ctx, &store.User{UID: "bob", Email: "bob@example.com", Role: store.RoleUser})
	require.NoError(t, err)

	ml, err := st.CreateCourse(ctx, &store.Course{Title: "Machine Learning"})
	require.NoError(t, err)
	db, err := st.CreateCourse(ctx, &store.Course{Title: "Databases"})
	require.NoError(t, err)
	_, err = st.CreateCourse(ctx, &store.Course{Title: "Pottery"})
	require.NoError(t, err)

	err = st.ReplaceUserRecommendations(ctx, alice.ID, []*store.Recommendation{
		{CourseID: ml.ID, SimilarityScore: 0.9},
		{CourseID: db.ID, SimilarityScore: 0.7},
	})
	require.NoError(t, err)
	err = st.ReplaceUserRecommendations(ctx, bob.ID, []*store.Recommendation{
		{CourseID: ml.ID, SimilarityScore: 0.8},
	})
	require.NoError(t, err)

	frequencies, err := reporter.RecommendationFrequency(ctx)
	require.NoError(t, err)
	require.Len(t, frequencies, 2)
	require.Equal(t, "Machine Learning", frequencies[0].Label)
	require.EqualValues(t, 2, frequencies[0].Count)
	require.Equal(t, "Databases", frequencies[1].Label)
	require.EqualValues(t, 1, frequencies[1].Count)
}

func TestSnapshotCaches(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewTestingStore(ctx, t)
	reporter := NewReporter(st)

	first, err := reporter.Snapshot(ctx)
	require.NoError(t, err)
	second, err := reporter.Snapshot(ctx)
	require.NoError(t, err)
	require.Same(t, first, second)

	reporter.Invalidate()
	third, err := reporter.Snapshot(ctx)
	require.NoError(t, err)
	require.NotSame(t, first, third)
}
