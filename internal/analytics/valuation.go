package analytics

import (
	"time"

	"coinScout/internal/domain"
)

// CoinValuation is the value of one position at the latest snapshot instant.
// BuyPrice and USDPrice are bridge per coin, when bought and now. BoughtFor, USDValue and
// ChangePct are rounded to 2 places; BTCValue keeps full precision.
type CoinValuation struct {
	Coin      string  `yaml:"coin"`
	Bridge    string  `yaml:"bridge"`
	Balance   float64 `yaml:"balance"`
	BuyPrice  float64 `yaml:"buy_price"`
	USDPrice  float64 `yaml:"usd_price"`
	BoughtFor float64 `yaml:"bought_for"`
	USDValue  float64 `yaml:"usd_value"`
	BTCValue  float64 `yaml:"btc_value"`
	ChangePct float64 `yaml:"change_pct"`
}

// PendingOrder is a position whose latest trade has not completed yet.
// OrderSize is the bridge starting balance of the order.
type PendingOrder struct {
	Coin      string            `yaml:"coin"`
	Bridge    string            `yaml:"bridge"`
	Side      domain.TradeSide  `yaml:"side"`
	State     domain.TradeState `yaml:"state"`
	OrderSize float64           `yaml:"order_size"`
}

// PortfolioTotal aggregates every valued position.
type PortfolioTotal struct {
	Coins     []string `yaml:"coins"`
	Bridge    string   `yaml:"bridge"`
	USDValue  float64  `yaml:"usd_value"`
	BTCValue  float64  `yaml:"btc_value"`
	BoughtFor float64  `yaml:"bought_for"`
	ChangePct float64  `yaml:"change_pct"`
}

// ValuationReport is the result of Valuation.
type ValuationReport struct {
	LastUpdate time.Time       `yaml:"last_update"`
	Coins      []CoinValuation `yaml:"coins"`
	Pending    []PendingOrder  `yaml:"pending,omitempty"`
	Total      PortfolioTotal  `yaml:"total"`
}

// Valuation values every position of record against the latest snapshots.
//
// Positions whose latest trade is not COMPLETE are reported as pending and left out of
// the total. COMPLETE positions are valued only when worth more than the materiality floor.
// Any position that cannot be valued fails the whole report.
func Valuation(positions []*domain.TradeRecord, current []*domain.CoinValue) (ValuationReport, error) {
	if len(positions) == 0 {
		return ValuationReport{}, dataUnavailable("no trades recorded")
	}
	if len(current) == 0 {
		return ValuationReport{}, dataUnavailable("no coin value snapshots recorded")
	}

	report := ValuationReport{
		LastUpdate: LastUpdate(current),
		Coins:      make([]CoinValuation, 0, len(positions)),
	}

	settled := make([]*domain.TradeRecord, 0, len(positions))
	for _, pos := range positions {
		if pos.IsComplete() {
			settled = append(settled, pos)
			continue
		}
		pending := PendingOrder{Coin: pos.AltCoin, Bridge: pos.CryptoCoin, Side: pos.Side(), State: pos.State}
		if pos.CryptoStartingBalance != nil {
			pending.OrderSize = *pos.CryptoStartingBalance
		}
		report.Pending = append(report.Pending, pending)
	}

	holdings, err := MaterialHoldings(settled, current)
	if err != nil {
		return ValuationReport{}, err
	}

	var usd, btc, bought total
	for _, h := range holdings {
		cv, err := valueHolding(h)
		if err != nil {
			return ValuationReport{}, err
		}
		report.Coins = append(report.Coins, cv)
		report.Total.Coins = append(report.Total.Coins, cv.Coin)
		report.Total.Bridge = cv.Bridge
		usd.add(cv.USDValue)
		btc.add(cv.BTCValue)
		bought.add(cv.BoughtFor)
	}

	report.Total.USDValue = usd.Float64()
	report.Total.BTCValue = btc.Float64()
	report.Total.BoughtFor = bought.Float64()
	if report.Total.BoughtFor != 0 {
		report.Total.ChangePct = percentChange(report.Total.USDValue, report.Total.BoughtFor)
	}
	return report, nil
}

func valueHolding(h Holding) (CoinValuation, error) {
	t := h.Trade
	if t.AltTradeAmount == nil || t.CryptoTradeAmount == nil {
		return CoinValuation{}, dataUnavailable("trade %d of %s has no trade amounts", t.ID, t.AltCoin)
	}
	buyPrice, ok := t.Price()
	if !ok || *t.CryptoTradeAmount == 0 {
		return CoinValuation{}, dataUnavailable("trade %d of %s has a zero trade amount", t.ID, t.AltCoin)
	}

	balance := *h.Value.Balance
	usdPrice := *h.Value.USDPrice
	var btcPrice float64
	if h.Value.BTCPrice != nil {
		btcPrice = *h.Value.BTCPrice
	}
	committed := *t.CryptoTradeAmount

	return CoinValuation{
		Coin:      t.AltCoin,
		Bridge:    t.CryptoCoin,
		Balance:   balance,
		BuyPrice:  buyPrice,
		USDPrice:  usdPrice,
		BoughtFor: round2(committed),
		USDValue:  round2(balance * usdPrice),
		BTCValue:  balance * btcPrice,
		ChangePct: percentChange(balance*usdPrice, committed),
	}, nil
}
