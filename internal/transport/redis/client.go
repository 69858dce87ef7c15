package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/memorize-backend/internal/apperror"
	"github.com/rocketscienceinc/memorize-backend/internal/entity"
)

const DefaultChannelPrefix = "memorize:snapshots"

// Publisher broadcasts game snapshots over Redis pub/sub, one channel per session.
// Nothing is stored: a snapshot nobody listens to is gone.
type Publisher struct {
	client        *redis.Client
	channelPrefix string
	closed        atomic.Bool
}

// New connects to Redis and checks the connection.
func New(ctx context.Context, addr, channelPrefix string) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(client, channelPrefix), nil
}

func NewWithClient(client *redis.Client, channelPrefix string) *Publisher {
	if channelPrefix == "" {
		channelPrefix = DefaultChannelPrefix
	}

	return &Publisher{
		client:        client,
		channelPrefix: channelPrefix,
	}
}

// Channel returns the pub/sub channel carrying a session's snapshots.
func (that *Publisher) Channel(sessionID string) string {
	return that.channelPrefix + ":" + sessionID
}

func (that *Publisher) Publish(ctx context.Context, snapshot entity.Snapshot[string]) error {
	if that.closed.Load() {
		return apperror.ErrPublisherNotActive
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err = that.client.Publish(ctx, that.Channel(snapshot.SessionID), snapshotJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish snapshot in Redis: %w", err)
	}

	return nil
}

// Subscribe listens to one session's snapshots. The caller closes the returned subscription.
func (that *Publisher) Subscribe(ctx context.Context, sessionID string) (*redis.PubSub, error) {
	sub := that.client.Subscribe(ctx, that.Channel(sessionID))

	// wait for the subscription confirmation so no snapshot published afterwards is missed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe in Redis: %w", err)
	}

	return sub, nil
}

// Decode parses a snapshot received on a session channel.
func Decode(msg *redis.Message) (entity.Snapshot[string], error) {
	var snapshot entity.Snapshot[string]
	if err := json.Unmarshal([]byte(msg.Payload), &snapshot); err != nil {
		return entity.Snapshot[string]{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snapshot, nil
}

func (that *Publisher) Close() error {
	if !that.closed.CompareAndSwap(false, true) {
		return nil
	}

	if err := that.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}

	return nil
}
