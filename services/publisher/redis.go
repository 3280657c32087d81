package publisher

import (
	"context"

	"github.com/redis/go-redis/v9"

	crawlerrors "sjsage522/licitacaoworker/pkg/errors"
)

const (
	// FieldID holds the record Id in each stream entry
	FieldID = "id"
	// FieldRecord holds the JSON encoded record
	FieldRecord = "record"
)

// RedisPublisher implements Publisher on a single Redis stream
type RedisPublisher struct {
	client          *redis.Client
	stream          string
	streamMaxLength int64
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(addr string, db int, stream string, streamMaxLength int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client:          client,
		stream:          stream,
		streamMaxLength: int64(streamMaxLength),
	}
}

// Ping checks the Redis connection
func (p *RedisPublisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return crawlerrors.NewPublisher(p.stream, "redis unreachable", err)
	}
	return nil
}

// Publish appends the message to the stream
func (p *RedisPublisher) Publish(ctx context.Context, key string, message []byte) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			FieldID:     key,
			FieldRecord: string(message),
		},
	}).Err()
	if err != nil {
		return crawlerrors.NewPublisher(p.stream, "failed to publish record "+key, err)
	}
	return nil
}

// TrimStreams trims the stream to the configured maximum length
func (p *RedisPublisher) TrimStreams(ctx context.Context) error {
	if p.streamMaxLength <= 0 {
		return nil
	}
	if err := p.client.XTrimMaxLen(ctx, p.stream, p.streamMaxLength).Err(); err != nil {
		return crawlerrors.NewPublisher(p.stream, "failed to trim stream", err)
	}
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
