package websockets

import "context"

// ConnectionManager tracks which websocket clients are currently listening
// for balance updates. Implemented by the connections table in storage.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// ConnectionLister enumerates the tracked connection ids a broadcast should
// reach.
type ConnectionLister interface {
	GetAllConnections(ctx context.Context) ([]string, error)
}

// Publisher pushes a message to every listening client. Balance updates are
// advisory; a failed push is logged and the movement stands.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
