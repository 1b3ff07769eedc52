package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey          = "notifications:queue" // List consumed by the delivery worker
	userChannelPrefix = "notifications:user:" // Pub/Sub channel per target user: notifications:user:{user_id}
)

// Sink accepts a composed payload for asynchronous delivery. Callers do not
// wait for transport acknowledgment; a failed send is logged and the rest of
// the batch continues.
type Sink interface {
	Send(ctx context.Context, p Payload) error
}

// RedisSink enqueues payloads on a redis list and fans them out on a
// per-user pub/sub channel.
type RedisSink struct {
	client *redis.Client
}

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client}
}

func (s *RedisSink) Send(ctx context.Context, p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, queueKey, data)
	pipe.Publish(ctx, s.userChannel(p.UserID), data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

func (s *RedisSink) userChannel(userID int64) string {
	return fmt.Sprintf("%s%d", userChannelPrefix, userID)
}
