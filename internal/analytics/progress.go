package analytics

import (
	"time"

	"coinScout/internal/domain"
)

// ProgressInput pairs a completed buy with the previous completed buy of the same coin
// and the deposits made between them.
type ProgressInput struct {
	Trade    *domain.TradeRecord
	Previous *domain.TradeRecord // nil when Trade is the first buy of its coin
	Deposits float64             // Bridge deposited strictly between Previous and Trade
}

// CoinProgress is the change in coin amount between two consecutive buys of a coin.
//
// RawChange is the plain difference of the amounts. Change removes the coins funded by
// deposits made between the buys, converted at the price of the later buy. Both are nil
// when there is no previous buy, as are Elapsed and ChangePct.
type CoinProgress struct {
	Coin            string         `yaml:"coin"`
	Bridge          string         `yaml:"bridge"`
	Amount          float64        `yaml:"amount"`
	BridgeAmount    float64        `yaml:"bridge_amount"`
	TradedAt        time.Time      `yaml:"traded_at"`
	PreviousAt      *time.Time     `yaml:"previous_at,omitempty"`
	RawChange       *float64       `yaml:"raw_change,omitempty"`
	Deposits        float64        `yaml:"deposits"`
	DepositedAmount float64        `yaml:"deposited_amount"`
	Change          *float64       `yaml:"change,omitempty"`
	ChangePct       *float64       `yaml:"change_pct,omitempty"`
	Elapsed         *time.Duration `yaml:"elapsed,omitempty"`
}

// ElapsedDaysHours splits Elapsed into whole days and remaining whole hours.
func (p CoinProgress) ElapsedDaysHours() (days, hours int, ok bool) {
	if p.Elapsed == nil {
		return 0, 0, false
	}
	d := *p.Elapsed
	return int(d / (24 * time.Hour)), int((d % (24 * time.Hour)) / time.Hour), true
}

// Progress computes the amount progress of each buy, newest first as given.
func Progress(inputs []ProgressInput) ([]CoinProgress, error) {
	out := make([]CoinProgress, 0, len(inputs))
	for _, in := range inputs {
		p, err := progressOf(in)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func progressOf(in ProgressInput) (CoinProgress, error) {
	t := in.Trade
	if t.AltTradeAmount == nil || t.CryptoTradeAmount == nil {
		return CoinProgress{}, dataUnavailable("trade %d of %s has no trade amounts", t.ID, t.AltCoin)
	}

	p := CoinProgress{
		Coin:         t.AltCoin,
		Bridge:       t.CryptoCoin,
		Amount:       *t.AltTradeAmount,
		BridgeAmount: round2(*t.CryptoTradeAmount),
		TradedAt:     t.Datetime,
		Deposits:     in.Deposits,
	}
	if in.Previous == nil {
		return p, nil
	}

	prev := in.Previous
	if prev.AltTradeAmount == nil {
		return CoinProgress{}, dataUnavailable("trade %d of %s has no trade amount", prev.ID, prev.AltCoin)
	}
	if prev.AltCoin != t.AltCoin {
		return CoinProgress{}, dataUnavailable("previous trade %d is for %s, not %s", prev.ID, prev.AltCoin, t.AltCoin)
	}

	raw := p.Amount - *prev.AltTradeAmount
	change := raw
	if in.Deposits != 0 {
		price, ok := t.Price()
		if !ok || price == 0 {
			return CoinProgress{}, dataUnavailable("trade %d of %s has no price to convert deposits", t.ID, t.AltCoin)
		}
		p.DepositedAmount = in.Deposits / price
		change -= p.DepositedAmount
	}

	prevAt := prev.Datetime
	elapsed := t.Datetime.Sub(prevAt)
	p.PreviousAt = &prevAt
	p.RawChange = &raw
	p.Change = &change
	p.Elapsed = &elapsed
	if base := p.Amount - change; base != 0 {
		pct := round2(change / base * 100)
		p.ChangePct = &pct
	}
	return p, nil
}
