package analytics

import (
	"time"

	"coinScout/internal/domain"
)

// TradeEntry is one line of the trade history.
type TradeEntry struct {
	Datetime     time.Time         `yaml:"datetime"`
	Side         domain.TradeSide  `yaml:"side"`
	Coin         string            `yaml:"coin"`
	Amount       float64           `yaml:"amount"`
	Bridge       string            `yaml:"bridge"`
	BridgeAmount *float64          `yaml:"bridge_amount,omitempty"`
	State        domain.TradeState `yaml:"state"`
}

// History lists trades newest first as given, skipping trades whose amount is not known yet.
func History(trades []*domain.TradeRecord) []TradeEntry {
	out := make([]TradeEntry, 0, len(trades))
	for _, t := range trades {
		if t.AltTradeAmount == nil {
			continue
		}
		out = append(out, TradeEntry{
			Datetime:     t.Datetime,
			Side:         t.Side(),
			Coin:         t.AltCoin,
			Amount:       *t.AltTradeAmount,
			Bridge:       t.CryptoCoin,
			BridgeAmount: t.CryptoTradeAmount,
			State:        t.State,
		})
	}
	return out
}
