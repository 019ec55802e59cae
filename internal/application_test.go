package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/config"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
)

func TestNewMatch(t *testing.T) {
	// Given: a game config with a custom fleet
	conf := config.Game{BoardSize: 6, Fleet: []int{2, 3}}

	// When: building the match
	match := NewMatch(conf)

	// Then: the board size and fleet follow the config
	assert.Equal(t, battleship.Setup{}, match.Phase())
	assert.Equal(t, []int{2, 3}, match.Fleet())
	assert.Equal(t, 6, match.BoardOf(entity.PlayerOne).Size())
}

func TestOpenResults(t *testing.T) {
	ctx := context.Background()

	t.Run("SQLite results are stored on disk", func(t *testing.T) {
		conf := &config.Config{Results: config.Results{
			Storage:    config.StorageSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "results.db"),
		}}

		results, closeResults, err := openResults(ctx, conf)
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeResults() })

		require.NoError(t, results.Save(ctx, &entity.MatchResult{ID: "m", Winner: 1}))

		stored, err := results.GetByID(ctx, "m")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Winner)
	})

	t.Run("None discards results", func(t *testing.T) {
		conf := &config.Config{Results: config.Results{Storage: config.StorageNone}}

		results, closeResults, err := openResults(ctx, conf)
		require.NoError(t, err)
		require.NoError(t, closeResults())

		require.NoError(t, results.Save(ctx, &entity.MatchResult{ID: "m"}))
		_, err = results.GetByID(ctx, "m")
		require.ErrorIs(t, err, repository.ErrResultNotFound)
	})

	t.Run("Redis without a host fails", func(t *testing.T) {
		conf := &config.Config{Results: config.Results{Storage: config.StorageRedis}}

		_, _, err := openResults(ctx, conf)

		require.ErrorIs(t, err, ErrAddrNotFound)
	})
}
