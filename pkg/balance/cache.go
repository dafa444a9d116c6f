package balance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tazdani/wallet-platform/pkg/metrics"
	"github.com/tazdani/wallet-platform/pkg/models"
	"github.com/tazdani/wallet-platform/pkg/storage"
)

// Snapshot is a point-in-time read of a wallet's balance. LastFetchedAt lets
// callers display staleness; the value is advisory only and never drives the
// authoritative balance check, which the storage layer performs itself.
type Snapshot struct {
	WalletId      string    `json:"wallet_id"`
	Balance       int64     `json:"balance"`
	Currency      string    `json:"currency"`
	LastFetchedAt time.Time `json:"last_fetched_at"`
}

// Cache is a read-through TTL cache over wallet balances. It exists to keep
// the display path from hammering the wallet store; a movement invalidates
// the affected wallets so the next read is fresh.
type Cache struct {
	store storage.WalletStore
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]*entry

	breaker *gobreaker.CircuitBreaker

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	wg            sync.WaitGroup
}

type entry struct {
	snapshot  Snapshot
	expiresAt time.Time
}

// DefaultTTL is the staleness window when none is configured. Matches the
// refresh interval the display clients used.
const DefaultTTL = 10 * time.Second

// New creates a Cache over the given wallet store. A zero ttl falls back to
// DefaultTTL. A background goroutine drops expired entries; call Close to
// stop it.
func New(store storage.WalletStore, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		store:   store,
		ttl:     ttl,
		entries: make(map[string]*entry),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "wallet-balance-fetch",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		cleanupTicker: time.NewTicker(ttl),
		stopCleanup:   make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanup()

	return c
}

// Read returns the latest known balance for a wallet, fetching from the
// store when the cached value is older than the TTL.
func (c *Cache) Read(ctx context.Context, walletID string) (*Snapshot, error) {
	c.mu.RLock()
	e, ok := c.entries[walletID]
	c.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		metrics.BalanceCacheHits.Inc()
		snap := e.snapshot
		return &snap, nil
	}

	metrics.BalanceCacheMisses.Inc()
	return c.fetch(ctx, walletID)
}

// Invalidate drops the cached value so the next read bypasses the staleness
// window. Called for both wallets after a successful movement.
func (c *Cache) Invalidate(walletID string) {
	c.mu.Lock()
	delete(c.entries, walletID)
	c.mu.Unlock()
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() {
	c.cleanupTicker.Stop()
	close(c.stopCleanup)
	c.wg.Wait()
}

func (c *Cache) fetch(ctx context.Context, walletID string) (*Snapshot, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.store.GetWallet(ctx, walletID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallet balance: %w", err)
	}

	wallet := result.(*models.Wallet)
	snap := Snapshot{
		WalletId:      wallet.Id,
		Balance:       wallet.Balance,
		Currency:      wallet.Currency,
		LastFetchedAt: time.Now(),
	}

	c.mu.Lock()
	c.entries[walletID] = &entry{snapshot: snap, expiresAt: snap.LastFetchedAt.Add(c.ttl)}
	c.mu.Unlock()

	return &snap, nil
}

func (c *Cache) cleanup() {
	defer c.wg.Done()
	for {
		select {
		case <-c.stopCleanup:
			return
		case <-c.cleanupTicker.C:
			now := time.Now()
			c.mu.Lock()
			for id, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, id)
				}
			}
			c.mu.Unlock()
		}
	}
}
