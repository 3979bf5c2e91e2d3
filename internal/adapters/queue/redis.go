package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prodroster/internal/domain"
)

const (
	defaultRedisKey = "prodroster:repair-queue"
	// pollTimeout bounds each BRPOP so ctx cancellation is observed promptly.
	pollTimeout = 5 * time.Second
)

type redisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue returns a RepairQueue stored in a redis list, shared by every replica.
func NewRedisQueue(client *redis.Client, key string) domain.RepairQueue {
	if key == "" {
		key = defaultRedisKey
	}
	return &redisQueue{client: client, key: key}
}

// NewRedisClient parses url (redis://...) and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (q *redisQueue) Enqueue(ctx context.Context, accountID string) error {
	return q.client.LPush(ctx, q.key, accountID).Err()
}

func (q *redisQueue) Dequeue(ctx context.Context) (string, error) {
	for {
		res, err := q.client.BRPop(ctx, pollTimeout, q.key).Result()
		if err == nil && len(res) == 2 {
			return res[1], nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			if errors.Is(err, redis.ErrClosed) {
				return "", ErrClosed
			}
			return "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
	}
}

func (q *redisQueue) Close() error {
	return q.client.Close()
}
