// Package websockets registers and deregisters the clients that listen for
// balance-update pushes. Clients only listen; they never send.
package websockets

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tazdani/wallet-platform/pkg/websockets"
)

// Handler tracks websocket connections in the connection registry. The
// lambda entry points serve API Gateway; ServeHTTP serves the local dev
// server with an in-process upgrade.
type Handler struct {
	registry websockets.ConnectionManager
	upgrader websocket.Upgrader
}

// NewHandler creates a new Handler.
func NewHandler(registry websockets.ConnectionManager) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			// Local dev only; API Gateway handles origins in production.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnect registers a new API Gateway connection.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	slog.Info("Client connected", "connectionId", connectionID)

	if err := h.registry.AddConnection(ctx, connectionID); err != nil {
		slog.Error("failed to save connection ID", "connectionId", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// HandleDisconnect deregisters an API Gateway connection.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	slog.Info("Client disconnected", "connectionId", connectionID)

	if err := h.registry.RemoveConnection(ctx, connectionID); err != nil {
		slog.Error("failed to delete connection ID", "connectionId", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// HandleDefault logs any frame a client sends. None are expected; the push
// channel is one-way.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("Received message", "connectionId", request.RequestContext.ConnectionID, "body", request.Body)
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

// ServeHTTP upgrades a local dev connection and tracks it in the same
// registry the lambdas use, so the notifier reaches local clients too.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	connectionID := uuid.New().String()
	untrack, err := h.track(ctx, connectionID)
	if err != nil {
		slog.Error("failed to save local connection ID", "connectionId", connectionID, "error", err)
		return
	}
	defer untrack()

	// The read loop exists only to notice the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("unexpected close error", "connectionId", connectionID, "error", err)
			}
			return
		}
	}
}

func (h *Handler) track(ctx context.Context, connectionID string) (func(), error) {
	if err := h.registry.AddConnection(ctx, connectionID); err != nil {
		return nil, err
	}
	slog.Info("Client connected locally", "connectionId", connectionID)

	return func() {
		slog.Info("Client disconnected locally", "connectionId", connectionID)
		if err := h.registry.RemoveConnection(ctx, connectionID); err != nil {
			slog.Error("failed to delete local connection ID", "connectionId", connectionID, "error", err)
		}
	}, nil
}
