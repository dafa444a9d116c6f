package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// ManagementAPI is the subset of the API Gateway management client used to
// push frames. Narrowed so tests can mock the client.
type ManagementAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// GatewayPublisher broadcasts balance updates through the API Gateway
// management API. Connections that API Gateway reports gone are removed
// from the registry as they are discovered.
type GatewayPublisher struct {
	connections ConnectionLister
	registry    ConnectionManager
	client      ManagementAPI
}

// NewPublisher builds a GatewayPublisher against a live API Gateway
// endpoint.
func NewPublisher(connections ConnectionLister, registry ConnectionManager, apiEndpoint string) (*GatewayPublisher, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})
	return NewPublisherWithClient(connections, registry, client), nil
}

// NewPublisherWithClient builds a GatewayPublisher around an existing
// management client.
func NewPublisherWithClient(connections ConnectionLister, registry ConnectionManager, client ManagementAPI) *GatewayPublisher {
	return &GatewayPublisher{
		connections: connections,
		registry:    registry,
		client:      client,
	}
}

// Publish sends the message to every tracked connection. A failure on one
// connection never stops the broadcast to the rest.
func (p *GatewayPublisher) Publish(ctx context.Context, message Message) error {
	connectionIDs, err := p.connections.GetAllConnections(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all connections: %w", err)
	}

	frame, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		p.push(ctx, connectionID, frame)
	}
	return nil
}

func (p *GatewayPublisher) push(ctx context.Context, connectionID string, frame []byte) {
	_, err := p.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(connectionID),
		Data:         frame,
	})
	if err == nil {
		return
	}

	var gone *apigwtypes.GoneException
	if errors.As(err, &gone) {
		slog.Info("stale connection found, deleting", "connectionId", connectionID)
		if err := p.registry.RemoveConnection(ctx, connectionID); err != nil {
			slog.Error("failed to delete stale connection", "connectionId", connectionID, "error", err)
		}
		return
	}
	slog.Error("failed to post to connection", "connectionId", connectionID, "error", err)
}
