package publisher

// Publisher represents a service for publishing alert messages. The consumer
// on the other side of the stream (chat bot, etc.) delivers them to the user.
type Publisher interface {
	// Publish publishes a message to the alert stream
	Publish(message []byte) error

	// TrimStream trims the alert stream to the configured maximum length
	TrimStream() error

	// Close closes the publisher connection
	Close() error
}
