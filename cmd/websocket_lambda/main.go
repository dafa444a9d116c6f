package main

import (
	"context"
	"log"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/tazdani/wallet-platform/pkg/config"
	wshandler "github.com/tazdani/wallet-platform/pkg/handlers/websockets"
	"github.com/tazdani/wallet-platform/pkg/money"
	dynamostore "github.com/tazdani/wallet-platform/pkg/storage/dynamodb"
)

var handler *wshandler.Handler

func init() {
	godotenv.Load()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	cfg := config.Load()
	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dynamostore.New(dbClient, nil, money.FeeSchedule{}, dynamostore.Tables{
		Connections: cfg.ConnectionsTable,
	})

	handler = wshandler.NewHandler(store)
}

// HandleRequest dispatches API Gateway websocket events by route key.
func HandleRequest(ctx context.Context, request awsevents.APIGatewayWebsocketProxyRequest) (awsevents.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return handler.HandleConnect(ctx, request)
	case "$disconnect":
		return handler.HandleDisconnect(ctx, request)
	default:
		return handler.HandleDefault(ctx, request)
	}
}

func main() {
	lambda.Start(HandleRequest)
}
