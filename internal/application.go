package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/memorize-backend/internal/config"
	"github.com/rocketscienceinc/memorize-backend/internal/entity"
	"github.com/rocketscienceinc/memorize-backend/internal/repository"
	"github.com/rocketscienceinc/memorize-backend/internal/theme"
	"github.com/rocketscienceinc/memorize-backend/internal/transport/redis"
	"github.com/rocketscienceinc/memorize-backend/internal/usecase"
	"github.com/rocketscienceinc/memorize-backend/transport/rest"
	"github.com/rocketscienceinc/memorize-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	settings, err := gameSettings(conf)
	if err != nil {
		return fmt.Errorf("invalid game settings: %w", err)
	}

	sessionRepo := repository.NewSessionRepository()

	var gameUseCase usecase.GameUseCase
	if conf.Redis.Enabled {
		publisher, pubErr := newRedisPublisher(ctx, conf)
		if pubErr != nil {
			return pubErr
		}

		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				log.Error("could not close redis publisher", "error", closeErr)
			}
		}()

		log.Info("Publishing snapshots to Redis", "addr", conf.Redis.GetRedisAddr(), "channel", conf.Redis.Channel)
		gameUseCase = usecase.NewGameUseCase(logger, sessionRepo, publisher, settings)
	} else {
		gameUseCase = usecase.NewGameUseCase(logger, sessionRepo, nil, settings)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// gameSettings checks the configured theme can be dealt before any player connects.
func gameSettings(conf *config.Config) (usecase.Settings, error) {
	gameTheme, err := theme.Lookup(conf.Game.Theme)
	if err != nil {
		return usecase.Settings{}, err
	}

	if conf.Game.Pairs > 0 {
		gameTheme = gameTheme.WithPairs(conf.Game.Pairs)
	}

	if err = gameTheme.Validate(); err != nil {
		return usecase.Settings{}, err
	}

	return usecase.Settings{
		DefaultTheme: gameTheme.Name,
		Pairs:        conf.Game.Pairs,
		Scoring: entity.ScoringPolicy{
			MatchBonus:      conf.Scoring.MatchBonus,
			MismatchPenalty: conf.Scoring.MismatchPenalty,
		},
	}, nil
}

func newRedisPublisher(ctx context.Context, conf *config.Config) (*redis.Publisher, error) {
	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return nil, ErrAddrNotFound
	}

	publisher, err := redis.New(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Channel)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return publisher, nil
}
