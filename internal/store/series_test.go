package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

func TestSeriesCreatedOnFirstMember(t *testing.T) {
	s := setupStore(t)

	mustAdd(t, s, map[string]any{
		"name":         "Half-Life",
		"hours_played": 12.0,
		"series_name":  "Half-Life",
	}, nil, nil)

	sr, err := s.Series().Get("Half-Life")
	require.NoError(t, err)
	assert.Equal(t, 1, sr.NumGames)
	assert.InDelta(t, 12.0, sr.TotalPlaytime, 1e-9)
	assertSeriesConsistent(t, s)
}

func TestSeriesAccumulatesMembers(t *testing.T) {
	s := setupStore(t)

	mustAdd(t, s, map[string]any{"name": "Half-Life", "hours_played": 12.0, "series_name": "Half-Life"}, nil, nil)
	mustAdd(t, s, map[string]any{"name": "Half-Life 2", "hours_played": 18.5, "series_name": "Half-Life"}, nil, nil)

	sr, err := s.Series().Get("Half-Life")
	require.NoError(t, err)
	assert.Equal(t, 2, sr.NumGames)
	assert.InDelta(t, 30.5, sr.TotalPlaytime, 1e-9)
	assertSeriesConsistent(t, s)
}

func TestSeriesMemberWithoutHours(t *testing.T) {
	s := setupStore(t)

	// hours_played absent counts as zero toward the rollup.
	mustAdd(t, s, map[string]any{"name": "Portal", "series_name": "Portal"}, nil, nil)

	sr, err := s.Series().Get("Portal")
	require.NoError(t, err)
	assert.Equal(t, 1, sr.NumGames)
	assert.Zero(t, sr.TotalPlaytime)
	assertSeriesConsistent(t, s)
}

func TestSeriesRemovedAtZeroMembers(t *testing.T) {
	s := setupStore(t)

	mustAdd(t, s, map[string]any{"name": "Portal", "hours_played": 6.0, "series_name": "Portal"}, nil, nil)
	mustAdd(t, s, map[string]any{"name": "Portal 2", "hours_played": 10.0, "series_name": "Portal"}, nil, nil)

	require.NoError(t, s.Games().Delete("Portal"))
	sr, err := s.Series().Get("Portal")
	require.NoError(t, err)
	assert.Equal(t, 1, sr.NumGames)
	assert.InDelta(t, 10.0, sr.TotalPlaytime, 1e-9)

	require.NoError(t, s.Games().Delete("Portal 2"))
	_, err = s.Series().Get("Portal")
	assert.ErrorIs(t, err, types.ErrNotFound)

	all, err := s.Series().List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSeriesReassignment(t *testing.T) {
	s := setupStore(t)

	mustAdd(t, s, map[string]any{"name": "Game A", "hours_played": 10.0, "series_name": "Trilogy"}, nil, nil)
	mustAdd(t, s, map[string]any{"name": "Game B", "hours_played": 20.0, "series_name": "Trilogy"}, nil, nil)

	// Move Game B to a new series: Trilogy drops to one member, Other is
	// created with Game B's hours.
	err := s.Games().Edit("Game B", map[string]any{"series_name": "Other"}, nil, nil)
	require.NoError(t, err)

	trilogy, err := s.Series().Get("Trilogy")
	require.NoError(t, err)
	assert.Equal(t, 1, trilogy.NumGames)
	assert.InDelta(t, 10.0, trilogy.TotalPlaytime, 1e-9)

	other, err := s.Series().Get("Other")
	require.NoError(t, err)
	assert.Equal(t, 1, other.NumGames)
	assert.InDelta(t, 20.0, other.TotalPlaytime, 1e-9)
	assertSeriesConsistent(t, s)
}

func TestSeriesClearedMembership(t *testing.T) {
	s := setupStore(t)

	mustAdd(t, s, map[string]any{"name": "Solo", "hours_played": 7.0, "series_name": "One-Off"}, nil, nil)

	err := s.Games().Edit("Solo", map[string]any{"series_name": ""}, nil, nil)
	require.NoError(t, err)

	_, err = s.Series().Get("One-Off")
	assert.ErrorIs(t, err, types.ErrNotFound)

	game, err := s.Games().Get("Solo")
	require.NoError(t, err)
	assert.Nil(t, game.SeriesName)
}

func TestSeriesJoinedOnEdit(t *testing.T) {
	s := setupStore(t)

	mustAdd(t, s, map[string]any{"name": "Late Joiner", "hours_played": 3.0}, nil, nil)

	err := s.Games().Edit("Late Joiner", map[string]any{"series_name": "Saga"}, nil, nil)
	require.NoError(t, err)

	sr, err := s.Series().Get("Saga")
	require.NoError(t, err)
	assert.Equal(t, 1, sr.NumGames)
	assert.InDelta(t, 3.0, sr.TotalPlaytime, 1e-9)
	assertSeriesConsistent(t, s)
}

func TestSeriesPlaytimeFollowsHoursEdit(t *testing.T) {
	s := setupStore(t)

	mustAdd(t, s, map[string]any{"name": "Grind", "hours_played": 5.0, "series_name": "Grind Saga"}, nil, nil)
	mustAdd(t, s, map[string]any{"name": "Grind 2", "hours_played": 5.0, "series_name": "Grind Saga"}, nil, nil)

	// An hours-only edit keeps the membership but moves the rollup.
	err := s.Games().Edit("Grind", map[string]any{"hours_played": 25.0}, nil, nil)
	require.NoError(t, err)

	sr, err := s.Series().Get("Grind Saga")
	require.NoError(t, err)
	assert.Equal(t, 2, sr.NumGames)
	assert.InDelta(t, 30.0, sr.TotalPlaytime, 1e-9)
	assertSeriesConsistent(t, s)
}

func TestSeriesListOrdered(t *testing.T) {
	s := setupStore(t)

	mustAdd(t, s, map[string]any{"name": "Z Game", "series_name": "Zeta"}, nil, nil)
	mustAdd(t, s, map[string]any{"name": "A Game", "series_name": "Alpha"}, nil, nil)
	mustAdd(t, s, map[string]any{"name": "M Game", "series_name": "Mid"}, nil, nil)

	all, err := s.Series().List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alpha", all[0].Name)
	assert.Equal(t, "Mid", all[1].Name)
	assert.Equal(t, "Zeta", all[2].Name)
}
