package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment.
type Config struct {
	Port string

	WalletsTable      string
	TransactionsTable string
	LedgerTable       string
	ProfilesTable     string
	AgentsTable       string
	MerchantsTable    string
	PaymentLinksTable string
	IdempotencyTable  string
	ConnectionsTable  string

	EventsQueueURL string

	// FrontendBaseURL is used to compose shareable payment-link URLs of the
	// form <base>/<merchant-slug>/<link-id>.
	FrontendBaseURL string

	TransferFeeBps int64
	PaymentFeeBps  int64

	BalanceCacheTTL time.Duration
}

// Load reads a .env file if present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on environment variables")
	}

	return &Config{
		Port: getEnv("HTTP_PORT", "8080"),

		WalletsTable:      getEnv("DYNAMODB_WALLETS_TABLE_NAME", ""),
		TransactionsTable: getEnv("DYNAMODB_TRANSACTIONS_TABLE_NAME", ""),
		LedgerTable:       getEnv("DYNAMODB_LEDGER_TABLE_NAME", ""),
		ProfilesTable:     getEnv("DYNAMODB_PROFILES_TABLE_NAME", ""),
		AgentsTable:       getEnv("DYNAMODB_AGENTS_TABLE_NAME", ""),
		MerchantsTable:    getEnv("DYNAMODB_MERCHANTS_TABLE_NAME", ""),
		PaymentLinksTable: getEnv("DYNAMODB_PAYMENT_LINKS_TABLE_NAME", ""),
		IdempotencyTable:  getEnv("DYNAMODB_IDEMPOTENCY_TABLE_NAME", ""),
		ConnectionsTable:  getEnv("DYNAMODB_CONNECTIONS_TABLE_NAME", ""),

		EventsQueueURL: getEnv("SQS_EVENTS_QUEUE_URL", ""),

		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "https://tazdani.ly"),

		TransferFeeBps: getEnvInt64("TRANSFER_FEE_BPS", 0),
		PaymentFeeBps:  getEnvInt64("PAYMENT_FEE_BPS", 0),

		BalanceCacheTTL: getEnvDuration("BALANCE_CACHE_TTL", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		slog.Warn("invalid integer env value, using fallback", "key", key, "value", value)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration env value, using fallback", "key", key, "value", value)
		return fallback
	}
	return d
}
