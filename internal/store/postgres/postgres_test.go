package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/campus-match/internal/analysis"
	"github.com/spigell/campus-match/internal/matching"
	"github.com/spigell/campus-match/internal/resume"
	"github.com/spigell/campus-match/internal/store"
)

func TestPayloadRoundTrip(t *testing.T) {
	rec := store.Record{
		Match:       &matching.Result{MatchScore: 55, Explanation: "ok", SkillsMatched: []string{"sql"}},
		Suggestions: analysis.DefaultSuggestions(),
	}

	p, err := encodePayload(rec)
	require.NoError(t, err)
	assert.Nil(t, p.profile, "absent profile must be stored as NULL")

	var got store.Record
	require.NoError(t, decodePayload(p, &got))
	assert.Equal(t, rec.Match, got.Match)
	assert.Nil(t, got.Profile)
	assert.Equal(t, rec.Suggestions, got.Suggestions)
}

// TestRepositoryUpsert runs against a real database when
// CAMPUS_MATCH_TEST_DSN is set.
func TestRepositoryUpsert(t *testing.T) {
	dsn := os.Getenv("CAMPUS_MATCH_TEST_DSN")
	if dsn == "" {
		t.Skip("CAMPUS_MATCH_TEST_DSN is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	repo, err := NewRepository(ctx, pool)
	require.NoError(t, err)

	key := store.Key{StudentID: "student-" + uuid.NewString(), JobID: "job-1"}
	first, err := repo.Upsert(ctx, store.Record{Key: key, Match: &matching.Result{MatchScore: 30, Explanation: "first"}})
	require.NoError(t, err)

	profile := resume.Extract("Jane Doe\njane@x.com")
	second, err := repo.Upsert(ctx, store.Record{Key: key, Profile: &profile})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got.Match)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "jane@x.com", got.Profile.PersonalInfo.Email)

	_, err = repo.Get(ctx, store.Key{StudentID: "missing", JobID: "missing"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
