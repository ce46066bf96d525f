package analytics

import (
	"sort"
	"time"

	"coinScout/internal/domain"
)

// CoinRatio is how far the held coin's price ratio against a counterpart is above the
// target ratio after fees. The largest ratio is the strongest rotation candidate.
type CoinRatio struct {
	Coin       string    `yaml:"coin"`
	Price      float64   `yaml:"price"`
	Ratio      float64   `yaml:"ratio"`
	ObservedAt time.Time `yaml:"observed_at"`
}

// RatioReport is the result of Ratios.
type RatioReport struct {
	Coin       string      `yaml:"coin"`
	Bridge     string      `yaml:"bridge"`
	LastUpdate time.Time   `yaml:"last_update"`
	Ratios     []CoinRatio `yaml:"ratios"`
}

// AdjustedRatio returns (current / other) minus the scouting fee, minus the target ratio.
func AdjustedRatio(currentPrice, otherPrice, targetRatio, scoutMultiplier float64) float64 {
	ratio := currentPrice / otherPrice
	return ratio - domain.RatioFeeRate*scoutMultiplier*ratio - targetRatio
}

// Ratios ranks the latest scout observations of coin, highest adjusted ratio first.
// Equal ratios are ordered by counterpart symbol so the order is total.
func Ratios(coin string, observations []*domain.ScoutObservation, params domain.ScoutParams) (RatioReport, error) {
	if len(observations) == 0 {
		return RatioReport{}, dataUnavailable("no scout history for %s", coin)
	}

	report := RatioReport{
		Coin:   coin,
		Bridge: params.Bridge,
		Ratios: make([]CoinRatio, 0, len(observations)),
	}
	for _, o := range observations {
		if o.FromCoin != coin {
			return RatioReport{}, dataUnavailable("scout observation %d is for %s, not %s", o.ID, o.FromCoin, coin)
		}
		if o.OtherCoinPrice == 0 {
			return RatioReport{}, dataUnavailable("scout observation %d has a zero %s price", o.ID, o.ToCoin)
		}
		if o.Datetime.After(report.LastUpdate) {
			report.LastUpdate = o.Datetime
		}
		report.Ratios = append(report.Ratios, CoinRatio{
			Coin:       o.ToCoin,
			Price:      o.OtherCoinPrice,
			Ratio:      AdjustedRatio(o.CurrentCoinPrice, o.OtherCoinPrice, o.TargetRatio, params.ScoutMultiplier),
			ObservedAt: o.Datetime,
		})
	}

	sort.SliceStable(report.Ratios, func(i, j int) bool {
		a, b := report.Ratios[i], report.Ratios[j]
		if a.Ratio != b.Ratio {
			return a.Ratio > b.Ratio
		}
		return a.Coin < b.Coin
	})
	return report, nil
}
