package queue

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodroster/internal/domain"
)

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://not-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestNewRedisQueue_DefaultKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	q := NewRedisQueue(client, "").(*redisQueue)
	assert.Equal(t, defaultRedisKey, q.key)

	q = NewRedisQueue(client, "custom").(*redisQueue)
	assert.Equal(t, "custom", q.key)
}

func TestRedisQueue_ClosedClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	q := NewRedisQueue(client, "test")
	require.NoError(t, q.Close())

	_, err := q.Dequeue(context.Background())
	assert.ErrorIs(t, err, domain.ErrQueueClosed)
	assert.Error(t, q.Enqueue(context.Background(), "acct-1"))
}
