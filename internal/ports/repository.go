package ports

import (
	"context"
	"time"

	"coinScout/internal/domain"
)

// TradeFilter narrows trade lookups. Zero values match everything.
type TradeFilter struct {
	Coin    string            // Alt coin symbol; empty matches any coin
	State   domain.TradeState // Trade state; empty matches any state
	Selling *bool             // Side; nil matches both
}

// Buying and Sold are convenience values for TradeFilter.Selling.
var (
	notSelling = false
	selling    = true
	Buying     = &notSelling
	Sold       = &selling
)

// HistoryStore opens read-only views over the trading bot's persisted history.
type HistoryStore interface {
	// Snapshot opens a consistent read-only view. The caller must Close it.
	Snapshot(ctx context.Context) (HistorySnapshot, error)
	// Close releases the underlying store.
	Close() error
}

// HistorySnapshot is a single invocation's view over the history.
// Lookups that find nothing return nil, nil.
type HistorySnapshot interface {
	// LatestTradeBefore returns the newest trade matching f strictly before `before`.
	// A zero `before` means no upper bound.
	LatestTradeBefore(ctx context.Context, f TradeFilter, before time.Time) (*domain.TradeRecord, error)

	// EarliestTradeAfter returns the oldest trade matching f strictly after `after`.
	EarliestTradeAfter(ctx context.Context, f TradeFilter, after time.Time) (*domain.TradeRecord, error)

	// RecentTrades returns up to limit trades matching f, newest first.
	RecentTrades(ctx context.Context, f TradeFilter, limit int) ([]*domain.TradeRecord, error)

	// PositionsOfRecord returns the highest-id trade of every coin.
	PositionsOfRecord(ctx context.Context) ([]*domain.TradeRecord, error)

	// LatestSnapshots returns every coin value written at the globally newest instant.
	LatestSnapshots(ctx context.Context) ([]*domain.CoinValue, error)

	// FirstSnapshotAtOrAfter returns the oldest coin value of coin at or after `at`.
	FirstSnapshotAtOrAfter(ctx context.Context, coin string, at time.Time) (*domain.CoinValue, error)

	// DepositsBetween sums deposits strictly between from and to.
	DepositsBetween(ctx context.Context, from, to time.Time) (total float64, count int, err error)

	// LatestScoutObservations returns the newest scout observation of every enabled
	// counterpart of fromCoin.
	LatestScoutObservations(ctx context.Context, fromCoin string) ([]*domain.ScoutObservation, error)

	// Close ends the view.
	Close() error
}
