package storage

import "context"

// ConnectionStore defines the interface for tracking live WebSocket
// connections used for balance-update pushes.
type ConnectionStore interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}
