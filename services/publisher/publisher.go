package publisher

import "context"

// Publisher delivers serialized records to a downstream stream
type Publisher interface {
	// Publish appends a message identified by key to the stream
	Publish(ctx context.Context, key string, message []byte) error

	// TrimStreams trims the stream to the configured maximum length
	TrimStreams(ctx context.Context) error

	// Close closes the publisher connection
	Close() error
}
