package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "playpen.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpenIsIdempotent(t *testing.T) {
	s, path := openTest(t)
	require.NoError(t, s.Close())

	again, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer again.Close()

	var n int
	require.NoError(t, again.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestKVExpiry(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()
	clock := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return clock }

	_, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "token", "abc", 14*24*time.Hour))
	require.NoError(t, s.Put(ctx, "forever", "x", 0))

	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	clock = clock.Add(15 * 24 * time.Hour)
	_, ok, err = s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = s.Get(ctx, "forever")
	assert.True(t, ok)

	require.NoError(t, s.Put(ctx, "forever", "y", 0))
	v, _, _ = s.Get(ctx, "forever")
	assert.Equal(t, "y", v)

	require.NoError(t, s.Delete(ctx, "forever"))
	require.NoError(t, s.Delete(ctx, "forever"))
	_, ok, _ = s.Get(ctx, "forever")
	assert.False(t, ok)
}

func TestProjects(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()
	clock := time.Unix(100, 0)
	s.now = func() time.Time { return clock }

	require.NoError(t, s.SaveProject(ctx, ProjectRecord{ID: "a", Description: "first", Data: []byte(`{"a":1}`)}))
	clock = clock.Add(time.Second)
	require.NoError(t, s.SaveProject(ctx, ProjectRecord{ID: "b", Description: "second", Data: []byte(`{}`)}))

	list, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Nil(t, list[0].Data)

	rec, err := s.LoadProject(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", rec.Description)
	assert.JSONEq(t, `{"a":1}`, string(rec.Data))
	assert.Equal(t, time.Unix(100, 0), rec.UpdatedAt)

	_, err = s.LoadProject(ctx, "zzz")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.DeleteProject(ctx, "a"))
	assert.True(t, errors.Is(s.DeleteProject(ctx, "a"), ErrNotFound))
	assert.Error(t, s.SaveProject(ctx, ProjectRecord{}))
}
