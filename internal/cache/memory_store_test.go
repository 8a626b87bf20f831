package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkflow/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := &model.Session{
		ID:        "s1",
		Answers:   map[string]model.Answer{},
		StartedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	session.PutAnswer("service-type", model.TextValue("residential"), time.Now().UTC())

	require.NoError(t, store.Set(ctx, session))

	loaded, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, []string{"service-type"}, loaded.AnswerOrder)
	assert.Equal(t, "residential", loaded.Answers["service-type"].Value.Text)
}

func TestMemoryStoreMissingSession(t *testing.T) {
	store := NewMemorySessionStore()

	loaded, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &model.Session{ID: "s1"}))
	require.NoError(t, store.Delete(ctx, "s1"))

	loaded, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting a missing session is a no-op
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestMemoryStoreCopiesSessions(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := &model.Session{ID: "s1", Answers: map[string]model.Answer{}}
	session.PutAnswer("frequency", model.TextValue("weekly"), time.Now().UTC())
	require.NoError(t, store.Set(ctx, session))

	// Mutating the caller's copy must not leak into the store
	session.PutAnswer("frequency", model.TextValue("daily"), time.Now().UTC())

	loaded, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "weekly", loaded.Answers["frequency"].Value.Text)

	// Two reads return independent sessions
	other, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	other.PutAnswer("rooms", model.ListValue([]string{"kitchen"}), time.Now().UTC())
	assert.False(t, loaded.Answered("rooms"))
}
