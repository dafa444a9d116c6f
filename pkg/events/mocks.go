package events

import "context"

// NoOpPublisher is a publisher that does nothing, for tests and local runs
// without a queue.
type NoOpPublisher struct{}

// PublishTransactionEvent does nothing.
func (p *NoOpPublisher) PublishTransactionEvent(ctx context.Context, ev *TransactionEvent) error {
	return nil
}
