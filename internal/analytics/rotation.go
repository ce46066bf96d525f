package analytics

import (
	"sort"
	"time"

	"coinScout/internal/domain"
)

// RotationTarget is the price a counterpart must fall to before the bot jumps into it.
// Percentage is TargetPrice / Price as a fraction; 1 means the jump is due now.
type RotationTarget struct {
	Coin        string    `yaml:"coin"`
	Price       float64   `yaml:"price"`
	TargetPrice float64   `yaml:"target_price"`
	Percentage  float64   `yaml:"percentage"`
	ObservedAt  time.Time `yaml:"observed_at"`
}

// Percent returns Percentage scaled to 100 and rounded to 2 places.
func (t RotationTarget) Percent() float64 {
	return round2(t.Percentage * 100)
}

// CoinRotation lists the rotation targets out of one held coin.
type CoinRotation struct {
	Coin    string           `yaml:"coin"`
	Targets []RotationTarget `yaml:"targets"`
}

// RotationReport is the result of Rotation.
type RotationReport struct {
	Bridge string         `yaml:"bridge"`
	Coins  []CoinRotation `yaml:"coins"`
}

// RotationInput is one held coin and its latest scout observations.
type RotationInput struct {
	Coin         string
	Observations []*domain.ScoutObservation
}

// TargetPrice returns the counterpart price at which the bot's scouting rule fires:
// (current - fee * current) / target ratio.
func TargetPrice(currentPrice, targetRatio, scoutMultiplier float64) float64 {
	return (currentPrice - domain.RotationFeeRate*scoutMultiplier*currentPrice) / targetRatio
}

// Rotation predicts the next jump for every held coin. Targets are ordered newest
// observation first, then by descending percentage.
func Rotation(inputs []RotationInput, params domain.ScoutParams) (RotationReport, error) {
	report := RotationReport{
		Bridge: params.Bridge,
		Coins:  make([]CoinRotation, 0, len(inputs)),
	}

	for _, in := range inputs {
		cr := CoinRotation{Coin: in.Coin, Targets: make([]RotationTarget, 0, len(in.Observations))}
		for _, o := range in.Observations {
			if o.FromCoin != in.Coin {
				return RotationReport{}, dataUnavailable("scout observation %d is for %s, not %s", o.ID, o.FromCoin, in.Coin)
			}
			if o.TargetRatio == 0 || o.OtherCoinPrice == 0 {
				return RotationReport{}, dataUnavailable("scout observation %d of %s->%s has a zero ratio or price", o.ID, o.FromCoin, o.ToCoin)
			}
			target := TargetPrice(o.CurrentCoinPrice, o.TargetRatio, params.ScoutMultiplier)
			cr.Targets = append(cr.Targets, RotationTarget{
				Coin:        o.ToCoin,
				Price:       o.OtherCoinPrice,
				TargetPrice: target,
				Percentage:  target / o.OtherCoinPrice,
				ObservedAt:  o.Datetime,
			})
		}

		sort.SliceStable(cr.Targets, func(i, j int) bool {
			a, b := cr.Targets[i], cr.Targets[j]
			if !a.ObservedAt.Equal(b.ObservedAt) {
				return a.ObservedAt.After(b.ObservedAt)
			}
			return a.Percentage > b.Percentage
		})
		report.Coins = append(report.Coins, cr)
	}
	return report, nil
}
