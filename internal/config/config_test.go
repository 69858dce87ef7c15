package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing values", func(t *testing.T) {
		// Given: a config file with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: every other field takes its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, "tools", conf.Game.Theme)
		assert.Equal(t, 0, conf.Game.Pairs)
		assert.Equal(t, 2, conf.Scoring.MatchBonus)
		assert.Equal(t, 1, conf.Scoring.MismatchPenalty)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "memorize:snapshots", conf.Redis.Channel)
	})

	t.Run("File values win over defaults", func(t *testing.T) {
		path := writeConfig(t, `
game:
  theme: animals
  pairs: 5
scoring:
  match-bonus: 4
  mismatch-penalty: 2
redis:
  enabled: true
  host: redis
  port: "6380"
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "animals", conf.Game.Theme)
		assert.Equal(t, 5, conf.Game.Pairs)
		assert.Equal(t, 4, conf.Scoring.MatchBonus)
		assert.Equal(t, 2, conf.Scoring.MismatchPenalty)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment can switch scoring off", func(t *testing.T) {
		// Given: zero scoring values in the environment
		t.Setenv("SCORING_MATCH_BONUS", "0")
		t.Setenv("SCORING_MISMATCH_PENALTY", "0")
		path := writeConfig(t, "log-level: info\n")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the zeros are kept
		require.NoError(t, err)
		assert.Equal(t, 0, conf.Scoring.MatchBonus)
		assert.Equal(t, 0, conf.Scoring.MismatchPenalty)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		assert.Error(t, err)
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
