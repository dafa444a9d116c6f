package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/tazdani/wallet-platform/pkg/config"
	"github.com/tazdani/wallet-platform/pkg/events"
	"github.com/tazdani/wallet-platform/pkg/money"
	dynamostore "github.com/tazdani/wallet-platform/pkg/storage/dynamodb"
	"github.com/tazdani/wallet-platform/pkg/websockets"
)

var publisher websockets.Publisher

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	cfg := config.Load()
	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dynamostore.New(dbClient, nil, money.FeeSchedule{}, dynamostore.Tables{
		Connections: cfg.ConnectionsTable,
	})

	apiEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")
	if apiEndpoint == "" {
		log.Fatal("WEBSOCKET_API_ENDPOINT environment variable not set")
	}

	publisher, err = websockets.NewPublisher(store, store, apiEndpoint)
	if err != nil {
		log.Fatalf("failed to create websocket publisher: %v", err)
	}
}

// HandleRequest fans a committed movement out to every connected client:
// one wallet-update message for the debited side, one for the credited side.
func HandleRequest(ctx context.Context, sqsEvent awsevents.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var ev events.TransactionEvent
		if err := json.Unmarshal([]byte(message.Body), &ev); err != nil {
			log.Printf("ERROR: failed to unmarshal transaction event from SQS message %s: %v", message.MessageId, err)
			return err
		}

		tx := ev.Transaction
		updates := []websockets.Message{}
		if tx.SenderWalletId != "" {
			updates = append(updates, websockets.NewWalletUpdate(tx.SenderWalletId, tx.Id, -(tx.Amount+tx.Fee), ev.SenderBalanceAfter))
		}
		if tx.ReceiverWalletId != "" {
			updates = append(updates, websockets.NewWalletUpdate(tx.ReceiverWalletId, tx.Id, tx.Amount, ev.ReceiverBalanceAfter))
		}

		for _, msg := range updates {
			if err := publisher.Publish(ctx, msg); err != nil {
				log.Printf("ERROR: failed to publish wallet update for transaction %s: %v", tx.Id, err)
				return err
			}
		}

		log.Printf("Published wallet updates for transaction %s", tx.Id)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
