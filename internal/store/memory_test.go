package store

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func seedSessions(t *testing.T, cols *Collections, base time.Time) {
	t.Helper()
	sessions := []model.GamingSession{
		{ID: "s1", MemberID: "m1", GameType: "Poker", Status: model.SessionCompleted, SessionStart: base.Add(time.Hour), NetResult: floatPtr(-50)},
		{ID: "s2", MemberID: "m2", GameType: "Slots", Status: model.SessionCompleted, SessionStart: base.Add(2 * time.Hour), NetResult: floatPtr(-30)},
		{ID: "s3", MemberID: "m3", GameType: "Slots", Status: model.SessionCompleted, SessionStart: base.Add(3 * time.Hour)},
		{ID: "s4", MemberID: "m1", GameType: "Roulette", Status: model.SessionActive, SessionStart: base.Add(-48 * time.Hour)},
	}
	require.NoError(t, cols.GamingSessions.InsertMany(context.Background(), sessions))
}

func TestMemoryBackendFiltersOnExistsAndTimeWindow(t *testing.T) {
	cols := NewCollections(NewMemoryBackend())
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedSessions(t, cols, base)
	ctx := context.Background()

	withResult, err := cols.GamingSessions.Find(ctx, bson.M{
		"session_start": bson.M{"$gte": base},
		"status":        model.SessionCompleted,
		"net_result":    bson.M{"$exists": true},
	}, FindOptions{})
	require.NoError(t, err)
	assert.Len(t, withResult, 2)

	inWindow, err := cols.GamingSessions.Count(ctx, bson.M{"session_start": bson.M{"$gte": base}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, inWindow)
}

func TestMemoryBackendSortSkipLimit(t *testing.T) {
	cols := NewCollections(NewMemoryBackend())
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedSessions(t, cols, base)

	page, err := cols.GamingSessions.Find(context.Background(), nil, FindOptions{
		Sort:  []SortField{{Field: "session_start", Desc: true}},
		Skip:  1,
		Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "s2", page[0].ID)
	assert.Equal(t, "s1", page[1].ID)
}

func TestMemoryBackendHugeSkipAndLimit(t *testing.T) {
	cols := NewCollections(NewMemoryBackend())
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedSessions(t, cols, base)
	ctx := context.Background()
	byStart := []SortField{{Field: "session_start"}}

	rest, err := cols.GamingSessions.Find(ctx, nil, FindOptions{Sort: byStart, Skip: 1, Limit: math.MaxInt64})
	require.NoError(t, err)
	require.Len(t, rest, 3)
	assert.Equal(t, "s1", rest[0].ID)

	none, err := cols.GamingSessions.Find(ctx, nil, FindOptions{Sort: byStart, Skip: math.MaxInt64, Limit: math.MaxInt64})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryBackendUpdateAndFindOne(t *testing.T) {
	cols := NewCollections(NewMemoryBackend())
	ctx := context.Background()
	require.NoError(t, cols.Notifications.Insert(ctx, &model.Notification{ID: "n1", Title: "t", Status: "unread"}))

	matched, err := cols.Notifications.Update(ctx, bson.M{"id": "n1"}, bson.M{"status": "read"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)

	got, err := cols.Notifications.FindByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "read", got.Status)

	_, err = cols.Notifications.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackendDeleteAll(t *testing.T) {
	cols := NewCollections(NewMemoryBackend())
	seedSessions(t, cols, time.Now().UTC())
	ctx := context.Background()

	require.NoError(t, cols.GamingSessions.DeleteAll(ctx))
	n, err := cols.GamingSessions.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
