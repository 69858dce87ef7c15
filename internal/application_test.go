package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/memorize-backend/internal/apperror"
	"github.com/rocketscienceinc/memorize-backend/internal/config"
)

func TestGameSettings(t *testing.T) {
	t.Run("Maps config onto game settings", func(t *testing.T) {
		conf := &config.Config{
			Game:    config.Game{Theme: "animals", Pairs: 5},
			Scoring: config.Scoring{MatchBonus: 3, MismatchPenalty: 2},
		}

		settings, err := gameSettings(conf)

		require.NoError(t, err)
		assert.Equal(t, "animals", settings.DefaultTheme)
		assert.Equal(t, 5, settings.Pairs)
		assert.Equal(t, 3, settings.Scoring.MatchBonus)
		assert.Equal(t, 2, settings.Scoring.MismatchPenalty)
	})

	t.Run("Zero scoring is passed through", func(t *testing.T) {
		settings, err := gameSettings(&config.Config{Game: config.Game{Theme: "tools"}})

		require.NoError(t, err)
		assert.Equal(t, 0, settings.Scoring.MatchBonus)
		assert.Equal(t, 0, settings.Scoring.MismatchPenalty)
	})

	t.Run("Unknown theme fails at startup", func(t *testing.T) {
		_, err := gameSettings(&config.Config{Game: config.Game{Theme: "planets"}})

		assert.ErrorIs(t, err, apperror.ErrThemeNotFound)
	})

	t.Run("Too many pairs fails at startup", func(t *testing.T) {
		_, err := gameSettings(&config.Config{Game: config.Game{Theme: "food", Pairs: 11}})

		assert.ErrorIs(t, err, apperror.ErrPaletteTooSmall)
	})
}

func TestNewRedisPublisher(t *testing.T) {
	_, err := newRedisPublisher(context.Background(), &config.Config{Redis: config.Redis{Enabled: true}})

	assert.ErrorIs(t, err, ErrAddrNotFound)
}
