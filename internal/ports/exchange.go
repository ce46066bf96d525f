package ports

import "context"

// PriceOracle supplies live exchange rates.
type PriceOracle interface {
	// CurrentPrice returns the latest price of asset quoted in reference (e.g. ADA in USDT).
	// Failures wrap ErrRateUnavailable.
	CurrentPrice(ctx context.Context, asset, reference string) (float64, error)
}
