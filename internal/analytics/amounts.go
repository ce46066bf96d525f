// Package analytics turns trading bot history rows into portfolio reports.
// Functions here are pure: callers gather rows from a ports.HistorySnapshot and pass them in.
package analytics

import (
	"fmt"
	"time"

	"coinScout/internal/domain"
	"coinScout/internal/ports"

	"github.com/shopspring/decimal"
)

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// percentChange returns (now - base) / base * 100 rounded to 2 places. base must be non-zero.
func percentChange(now, base float64) float64 {
	return round2((now - base) / base * 100)
}

// total sums values exactly, so a total of rounded figures equals the figures shown.
type total struct {
	d decimal.Decimal
}

func (t *total) add(v float64) {
	t.d = t.d.Add(decimal.NewFromFloat(v))
}

func (t *total) Float64() float64 {
	return t.d.InexactFloat64()
}

// dataUnavailable builds an ErrDataUnavailable error.
func dataUnavailable(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ports.ErrDataUnavailable)...)
}

// Holding joins a coin's position-of-record with its snapshot at the latest global instant.
type Holding struct {
	Trade *domain.TradeRecord
	Value *domain.CoinValue
}

// Coin returns the held coin symbol.
func (h Holding) Coin() string {
	return h.Trade.AltCoin
}

// USDValue returns balance * usd_price of the current snapshot.
func (h Holding) USDValue() float64 {
	v, _ := h.Value.USDValue()
	return v
}

// MaterialHoldings returns, in position order, every position whose current snapshot is
// worth more than domain.MaterialityFloor. Coins without a current snapshot are not held.
// A snapshot missing its balance or USD price cannot be classified and fails the call.
func MaterialHoldings(positions []*domain.TradeRecord, current []*domain.CoinValue) ([]Holding, error) {
	byCoin := make(map[string]*domain.CoinValue, len(current))
	for _, cv := range current {
		byCoin[cv.Coin] = cv
	}

	holdings := make([]Holding, 0, len(positions))
	for _, pos := range positions {
		cv, ok := byCoin[pos.AltCoin]
		if !ok {
			continue
		}
		value, ok := cv.USDValue()
		if !ok {
			return nil, dataUnavailable("current snapshot of %s has no balance or USD price", pos.AltCoin)
		}
		if value > domain.MaterialityFloor {
			holdings = append(holdings, Holding{Trade: pos, Value: cv})
		}
	}
	return holdings, nil
}

// LastUpdate returns the instant of the current snapshots, zero when there are none.
func LastUpdate(current []*domain.CoinValue) time.Time {
	var last time.Time
	for _, cv := range current {
		if cv.Datetime.After(last) {
			last = cv.Datetime
		}
	}
	return last
}
