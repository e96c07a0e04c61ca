package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchemaIdempotent(t *testing.T) {
	s := setupStore(t)

	// Open already applied the schema; applying it again must be a no-op.
	require.NoError(t, s.CreateSchema())
	require.NoError(t, s.CreateSchema())

	rows, err := s.query("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"game", "genre", "platform", "series"}, tables)
}

func TestCreateSchemaPreservesData(t *testing.T) {
	s := setupStore(t)
	mustAdd(t, s, map[string]any{"name": "Hades"}, nil, nil)

	require.NoError(t, s.CreateSchema())

	game, err := s.Games().Get("Hades")
	require.NoError(t, err)
	assert.Equal(t, "Hades", game.Name)
}
