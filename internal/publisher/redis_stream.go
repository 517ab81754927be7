// Package publisher emits cycle events onto Redis streams for downstream
// consumers (dashboards, alerting) that want more than the REST snapshot.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cycleStream  = "scrape.cycles.collegestats"
	resultStream = "scrape.results.collegestats"
)

// RedisPublisher publishes scrape events to Redis streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher with its own connection.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{client: client}, nil
}

// NewRedisPublisherFromClient reuses an existing Redis client.
func NewRedisPublisherFromClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishCycleSummary publishes the summary of a finished sync cycle.
func (rp *RedisPublisher) PublishCycleSummary(ctx context.Context, summary any) error {
	return rp.publish(ctx, cycleStream, summary)
}

// PublishResult publishes a single player's scrape result as it completes.
func (rp *RedisPublisher) PublishResult(ctx context.Context, result any) error {
	return rp.publish(ctx, resultStream, result)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
