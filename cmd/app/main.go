package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tazdani/wallet-platform/pkg/balance"
	"github.com/tazdani/wallet-platform/pkg/config"
	"github.com/tazdani/wallet-platform/pkg/events"
	"github.com/tazdani/wallet-platform/pkg/handlers/agents"
	"github.com/tazdani/wallet-platform/pkg/handlers/ledger"
	"github.com/tazdani/wallet-platform/pkg/handlers/locator"
	"github.com/tazdani/wallet-platform/pkg/handlers/movements"
	"github.com/tazdani/wallet-platform/pkg/handlers/paymentlinks"
	"github.com/tazdani/wallet-platform/pkg/handlers/profiles"
	"github.com/tazdani/wallet-platform/pkg/handlers/transactions"
	"github.com/tazdani/wallet-platform/pkg/handlers/wallets"
	wshandler "github.com/tazdani/wallet-platform/pkg/handlers/websockets"
	"github.com/tazdani/wallet-platform/pkg/middleware"
	"github.com/tazdani/wallet-platform/pkg/money"
	dynamostore "github.com/tazdani/wallet-platform/pkg/storage/dynamodb"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	tables := dynamostore.Tables{
		Wallets:      cfg.WalletsTable,
		Transactions: cfg.TransactionsTable,
		Ledger:       cfg.LedgerTable,
		Profiles:     cfg.ProfilesTable,
		Agents:       cfg.AgentsTable,
		Merchants:    cfg.MerchantsTable,
		PaymentLinks: cfg.PaymentLinksTable,
		Idempotency:  cfg.IdempotencyTable,
		Connections:  cfg.ConnectionsTable,
	}
	if tables.Wallets == "" || tables.Transactions == "" || tables.Ledger == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	var publisher events.Publisher = &events.NoOpPublisher{}
	if cfg.EventsQueueURL != "" {
		publisher = events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.EventsQueueURL)
	} else {
		slog.Warn("SQS_EVENTS_QUEUE_URL not set, transaction events will not be published")
	}

	fees := money.FeeSchedule{TransferBps: cfg.TransferFeeBps, PaymentBps: cfg.PaymentFeeBps}
	store := dynamostore.New(dbClient, publisher, fees, tables)

	cache := balance.New(store, cfg.BalanceCacheTTL)
	defer cache.Close()

	walletsHandler := wallets.NewWalletsHandler(store, cache)
	movementsHandler := movements.NewMovementsHandler(store, cache)
	linksHandler := paymentlinks.NewPaymentLinksHandler(store, store, cfg.FrontendBaseURL, movementsHandler.ExecutePayment)
	txHandler := transactions.NewTransactionsHandler(store)
	ledgerHandler := ledger.NewLedgerHandler(store)
	locatorHandler := locator.NewLocatorHandler(store, store)
	profilesHandler := profiles.NewProfilesHandler(store)
	agentsHandler := agents.NewAgentsHandler(store)
	wsHandler := wshandler.NewHandler(store)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/wallets", func(r chi.Router) {
		r.Post("/", walletsHandler.CreateWallet)
		r.Get("/", walletsHandler.ListWallets)
		r.Get("/{walletId}", func(w http.ResponseWriter, r *http.Request) {
			walletsHandler.GetWalletById(w, r, chi.URLParam(r, "walletId"))
		})
		r.Delete("/{walletId}", func(w http.ResponseWriter, r *http.Request) {
			walletsHandler.DeleteWallet(w, r, chi.URLParam(r, "walletId"))
		})
		r.Get("/{walletId}/balance", func(w http.ResponseWriter, r *http.Request) {
			walletsHandler.GetBalance(w, r, chi.URLParam(r, "walletId"))
		})
		r.Get("/{walletId}/transactions", func(w http.ResponseWriter, r *http.Request) {
			txHandler.ListTransactionsByWallet(w, r, chi.URLParam(r, "walletId"))
		})
	})
	router.Get("/public/wallets/{ownerType}/{ownerId}", func(w http.ResponseWriter, r *http.Request) {
		walletsHandler.GetWalletByOwner(w, r, chi.URLParam(r, "ownerType"), chi.URLParam(r, "ownerId"))
	})

	router.Post("/transfers", movementsHandler.CreateTransfer)
	router.Post("/payments", movementsHandler.CreatePayment)
	router.Post("/deposits", movementsHandler.CreateDeposit)
	router.Post("/withdrawals", movementsHandler.CreateWithdrawal)

	router.Get("/transactions/{transactionId}", func(w http.ResponseWriter, r *http.Request) {
		parsed, err := uuid.Parse(chi.URLParam(r, "transactionId"))
		if err != nil {
			http.Error(w, "Invalid transaction id", http.StatusBadRequest)
			return
		}
		txHandler.GetTransactionById(w, r, openapi_types.UUID(parsed))
	})

	router.Get("/ledger", ledgerHandler.ListLedgerEntries)

	router.Route("/payment-links", func(r chi.Router) {
		r.Post("/", linksHandler.CreatePaymentLink)
		r.Get("/{linkId}", func(w http.ResponseWriter, r *http.Request) {
			linksHandler.GetPaymentLink(w, r, chi.URLParam(r, "linkId"))
		})
		r.Post("/{linkId}/pay", func(w http.ResponseWriter, r *http.Request) {
			linksHandler.PayPaymentLink(w, r, chi.URLParam(r, "linkId"))
		})
	})

	router.Route("/profiles", func(r chi.Router) {
		r.Post("/", profilesHandler.CreateProfile)
		r.Get("/{profileId}", func(w http.ResponseWriter, r *http.Request) {
			profilesHandler.GetProfile(w, r, chi.URLParam(r, "profileId"))
		})
		r.Put("/{profileId}/pin", func(w http.ResponseWriter, r *http.Request) {
			profilesHandler.SetPin(w, r, chi.URLParam(r, "profileId"))
		})
	})

	router.Get("/agents/nearby", locatorHandler.NearbyAgents)
	router.Get("/merchants/nearby", locatorHandler.NearbyMerchants)
	router.Post("/agents/{agentId}/sync-wallet", func(w http.ResponseWriter, r *http.Request) {
		agentsHandler.SyncWallet(w, r, chi.URLParam(r, "agentId"))
	})

	router.Get("/ws", wsHandler.ServeHTTP)

	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
