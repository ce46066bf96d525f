package analytics

import "coinScout/internal/domain"

// Disposition tells the confirmation flow what stopping the bot would involve.
type Disposition int

const (
	DispositionFailed  Disposition = -1 // The report could not be built
	DispositionBought  Disposition = 1  // Holding the coin; liquidate at market
	DispositionBuying  Disposition = 2  // Buy order open; cancel it
	DispositionSold    Disposition = 3  // Already in the bridge; just stop
	DispositionSelling Disposition = 4  // Sell order open; cancel it
)

// String returns the disposition name.
func (d Disposition) String() string {
	switch d {
	case DispositionBought:
		return "bought"
	case DispositionBuying:
		return "buying"
	case DispositionSold:
		return "sold"
	case DispositionSelling:
		return "selling"
	default:
		return "failed"
	}
}

// MarshalYAML renders the disposition by name.
func (d Disposition) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// PanicReport describes the latest trade for a stop decision. PriceThen is the trade
// (or limit) price and PriceNow the live rate, both bridge per coin.
type PanicReport struct {
	Disposition  Disposition       `yaml:"disposition"`
	Coin         string            `yaml:"coin"`
	Bridge       string            `yaml:"bridge"`
	State        domain.TradeState `yaml:"state"`
	Amount       float64           `yaml:"amount"`
	BridgeAmount float64           `yaml:"bridge_amount"`
	PriceThen    float64           `yaml:"price_then"`
	PriceNow     float64           `yaml:"price_now"`
	CurrentValue float64           `yaml:"current_value"`
	ChangePct    float64           `yaml:"change_pct"`
}

// NeedsLiveRate reports whether Panic needs the current price for trade.
// Only a completed sell can be described without one.
func NeedsLiveRate(trade *domain.TradeRecord) bool {
	return !(trade.Selling && trade.IsComplete())
}

// Panic classifies the latest trade. priceNow is ignored when NeedsLiveRate is false.
// An open order may not carry its amounts yet; it is still classified, with PriceThen and
// ChangePct left at zero when no order price is known.
// Failures return DispositionFailed alongside the error.
func Panic(trade *domain.TradeRecord, priceNow float64) (PanicReport, error) {
	failed := PanicReport{Disposition: DispositionFailed}
	if trade == nil {
		return failed, dataUnavailable("no trades recorded")
	}

	report := PanicReport{
		Disposition: disposition(trade),
		Coin:        trade.AltCoin,
		Bridge:      trade.CryptoCoin,
		State:       trade.State,
	}
	if report.Disposition == DispositionSold {
		return report, nil
	}

	if trade.AltTradeAmount != nil {
		report.Amount = *trade.AltTradeAmount
	}
	if trade.CryptoTradeAmount != nil {
		report.BridgeAmount = *trade.CryptoTradeAmount
	}
	report.PriceNow = priceNow

	priceThen, ok := orderPrice(trade)
	if ok {
		report.PriceThen = priceThen
		report.ChangePct = percentChange(priceNow, priceThen)
	}

	if report.Disposition == DispositionBought {
		if !ok || trade.AltTradeAmount == nil {
			return failed, dataUnavailable("trade %d of %s has no trade amounts", trade.ID, trade.AltCoin)
		}
		report.CurrentValue = round2(priceNow * report.Amount)
	}
	return report, nil
}

func disposition(trade *domain.TradeRecord) Disposition {
	switch {
	case trade.Selling && trade.IsComplete():
		return DispositionSold
	case trade.Selling:
		return DispositionSelling
	case trade.IsComplete():
		return DispositionBought
	default:
		return DispositionBuying
	}
}

// orderPrice returns the trade price, or for a buy still in flight the order size over
// the amount requested.
func orderPrice(trade *domain.TradeRecord) (float64, bool) {
	if price, ok := trade.Price(); ok && price != 0 {
		return price, true
	}
	if trade.Selling || trade.CryptoStartingBalance == nil || trade.AltTradeAmount == nil || *trade.AltTradeAmount == 0 {
		return 0, false
	}
	price := *trade.CryptoStartingBalance / *trade.AltTradeAmount
	return price, price != 0
}
