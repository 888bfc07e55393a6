package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/togramago/melodygen/internal/generator"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newMelody(t *testing.T, seed uint64, mutate func(*generator.Params)) *generator.Melody {
	t.Helper()
	p := generator.DefaultParams()
	p.Seed = &seed
	if mutate != nil {
		mutate(&p)
	}
	m, err := generator.GenerateMelody(p)
	require.NoError(t, err)
	return m
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m := newMelody(t, 99, func(p *generator.Params) {
		p.Voices = 2
		p.RootNote = "A"
		p.ScaleType = "minor"
	})

	saved, err := s.Save(ctx, m)
	require.NoError(t, err)
	assert.Len(t, saved.ID, 26)
	assert.Equal(t, "A Minor", saved.Key)
	assert.Equal(t, 4, saved.Bars)
	assert.Equal(t, 2, saved.Voices)
	assert.Equal(t, uint64(99), saved.Seed)

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, saved.Key, got.Key)
	assert.Equal(t, m, got.Melody)
}

func TestGetUnknown(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveNil(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(context.Background(), nil)
	assert.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var ids []string
	for i := uint64(1); i <= 3; i++ {
		e, err := s.Save(ctx, newMelody(t, i, nil))
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	entries, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ids[2], entries[0].ID)
	assert.Equal(t, ids[0], entries[2].ID)
	for _, e := range entries {
		assert.Nil(t, e.Melody)
	}

	entries, err = s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}

func TestLargeSeedSurvives(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	saved, err := s.Save(ctx, newMelody(t, ^uint64(0), nil))
	require.NoError(t, err)

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), got.Seed)
	assert.Equal(t, ^uint64(0), got.Melody.Seed)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
