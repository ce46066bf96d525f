package domain

import "time"

// CoinValue is a periodic balance and price snapshot of one coin.
type CoinValue struct {
	ID       int64
	Coin     string
	Balance  *float64 // Balance held at Datetime
	USDPrice *float64 // Price in USD at Datetime
	BTCPrice *float64 // Price in BTC at Datetime
	Interval string   // Snapshot interval tag written by the bot (MINUTELY, HOURLY, ...)
	Datetime time.Time
}

// USDValue returns balance * usd_price. ok is false when either field is missing.
func (v *CoinValue) USDValue() (value float64, ok bool) {
	if v.Balance == nil || v.USDPrice == nil {
		return 0, false
	}
	return *v.Balance * *v.USDPrice, true
}
