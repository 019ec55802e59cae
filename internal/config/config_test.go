package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults when no file exists", func(t *testing.T) {
		// When: loading from a path that doesn't exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, ModeServer, conf.Mode)
		assert.Equal(t, 10, conf.Game.BoardSize)
		assert.Equal(t, []int{2, 3, 3, 4, 5}, conf.Game.Fleet)
		assert.False(t, conf.Game.LegacyWinCheck)
		assert.Equal(t, StorageNone, conf.Results.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Reads the YAML file", func(t *testing.T) {
		// Given: a config file overriding a few keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "mode: console\n" +
			"game:\n" +
			"  board-size: 8\n" +
			"  fleet: [2, 2, 3]\n" +
			"  legacy-win-check: true\n" +
			"results:\n" +
			"  storage: sqlite\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: file values win over defaults
		require.NoError(t, err)
		assert.Equal(t, ModeConsole, conf.Mode)
		assert.Equal(t, 8, conf.Game.BoardSize)
		assert.Equal(t, []int{2, 2, 3}, conf.Game.Fleet)
		assert.True(t, conf.Game.LegacyWinCheck)
		assert.Equal(t, StorageSQLite, conf.Results.Storage)
	})

	t.Run("Rejects unknown storage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("results:\n  storage: s3\n"), 0o600))

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalidStorage)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Mode:    ModeServer,
			Game:    Game{BoardSize: 10, Fleet: []int{2, 3}},
			Results: Results{Storage: StorageNone},
		}
	}

	require.NoError(t, valid().Validate())

	conf := valid()
	conf.Mode = "daemon"
	require.ErrorIs(t, conf.Validate(), ErrInvalidMode)

	conf = valid()
	conf.Game.BoardSize = 27
	require.ErrorIs(t, conf.Validate(), ErrInvalidBoardSize)

	conf = valid()
	conf.Game.Fleet = []int{2, 0}
	require.ErrorIs(t, conf.Validate(), ErrInvalidFleet)

	conf = valid()
	conf.Game.Fleet = []int{}
	require.ErrorIs(t, conf.Validate(), ErrInvalidFleet)

	conf = valid()
	conf.Game.Fleet = nil
	require.ErrorIs(t, conf.Validate(), ErrInvalidFleet)

	conf = valid()
	conf.Game.Fleet = []int{2, 11}
	require.ErrorIs(t, conf.Validate(), ErrInvalidFleet)

	conf = valid()
	conf.Game.Fleet = []int{10}
	require.NoError(t, conf.Validate())
}
