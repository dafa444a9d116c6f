package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/tazdani/wallet-platform/pkg/config"
	"github.com/tazdani/wallet-platform/pkg/money"
	"github.com/tazdani/wallet-platform/pkg/storage"
	dynamostore "github.com/tazdani/wallet-platform/pkg/storage/dynamodb"
)

var store storage.ApiStore

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	cfg := config.Load()
	dbClient := dynamodb.NewFromConfig(awsCfg)
	store = dynamostore.New(dbClient, nil, money.FeeSchedule{}, dynamostore.Tables{
		Wallets:      cfg.WalletsTable,
		Transactions: cfg.TransactionsTable,
		Ledger:       cfg.LedgerTable,
		Profiles:     cfg.ProfilesTable,
		Agents:       cfg.AgentsTable,
		Merchants:    cfg.MerchantsTable,
		PaymentLinks: cfg.PaymentLinksTable,
		Idempotency:  cfg.IdempotencyTable,
		Connections:  cfg.ConnectionsTable,
	})
}

// HandleRequest is triggered by an EventBridge Schedule. It sweeps active
// payment links whose expiry has passed; reads already flip overdue links
// lazily, so this only catches links nobody looked at.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting payment link expiry sweep...")

	overdue, err := store.ListOverdueActiveLinks(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("ERROR: failed to list overdue links: %v", err)
		return err
	}

	if len(overdue) == 0 {
		log.Println("No overdue payment links found.")
		return nil
	}

	log.Printf("Found %d overdue payment links. Expiring them...", len(overdue))

	for _, link := range overdue {
		if err := store.ExpirePaymentLink(ctx, link.Id); err != nil {
			log.Printf("ERROR: failed to expire payment link %s: %v", link.Id, err)
			// One failure should not stop the whole sweep.
			continue
		}
		log.Printf("Expired payment link %s", link.Id)
	}

	log.Println("Payment link expiry sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
