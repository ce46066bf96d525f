package domain

import "time"

// TradeRecord is one row of the trading bot's trade history.
// Amount fields are nil when the bot has not written them yet (e.g. an order still in flight).
type TradeRecord struct {
	ID                    int64      // Row id; the highest id per coin is that coin's position-of-record
	AltCoin               string     // Coin being bought or sold (e.g. "ADA")
	CryptoCoin            string     // Bridge coin the trade is settled in (e.g. "USDT")
	Selling               bool       // True when the alt coin is sold for the bridge
	State                 TradeState // Lifecycle state
	AltStartingBalance    *float64   // Alt coin balance before the trade
	AltTradeAmount        *float64   // Alt coin amount bought or sold
	CryptoStartingBalance *float64   // Bridge balance before the trade (the order size for buys)
	CryptoTradeAmount     *float64   // Bridge amount committed or received
	Datetime              time.Time  // When the trade row was written
}

// IsComplete reports whether the trade has been filled.
func (t *TradeRecord) IsComplete() bool {
	return t.State == StateComplete
}

// Side returns the trade direction.
func (t *TradeRecord) Side() TradeSide {
	if t.Selling {
		return SideSell
	}
	return SideBuy
}

// Price returns the bridge price per alt coin of the trade (bridge amount / alt amount).
// ok is false when either amount is missing or the alt amount is zero.
func (t *TradeRecord) Price() (price float64, ok bool) {
	if t.AltTradeAmount == nil || t.CryptoTradeAmount == nil || *t.AltTradeAmount == 0 {
		return 0, false
	}
	return *t.CryptoTradeAmount / *t.AltTradeAmount, true
}
