package analytics

import "coinScout/internal/domain"

// TrendWindows are the lookback periods, in days, reported by Trend.
var TrendWindows = []int{1, 7}

// TrendInput is what Trend needs for one held coin.
// Past maps a window in days to the first snapshot at or after the earliest completed buy
// inside that window; missing or nil entries mean no history.
type TrendInput struct {
	Holding Holding
	Past    map[int]*domain.CoinValue
}

// TrendWindow is the portfolio return over one lookback period. Coins lists the coins with
// usable history, and CurrentValue is their value now, so both sides cover the same coins.
// ReturnRate is 0, not an error, when there is no usable history.
type TrendWindow struct {
	Days         int      `yaml:"days"`
	Coins        []string `yaml:"coins"`
	CurrentValue float64  `yaml:"current_value"`
	PastValue    float64  `yaml:"past_value"`
	ReturnRate   float64  `yaml:"return_rate"`
	HasHistory   bool     `yaml:"has_history"`
}

// TrendReport is the result of Trend.
type TrendReport struct {
	Coins        []string      `yaml:"coins"`
	CurrentValue float64       `yaml:"current_value"`
	Windows      []TrendWindow `yaml:"windows"`
}

// Trend compares the current value of the held coins with their value 1 and 7 days ago.
// A coin contributes to a window only when it has a past snapshot with both fields set
// and a non-zero current USD price. Coins without history are left out of both sides.
func Trend(inputs []TrendInput) TrendReport {
	report := TrendReport{
		Coins:   make([]string, 0, len(inputs)),
		Windows: make([]TrendWindow, 0, len(TrendWindows)),
	}

	var current total
	for _, in := range inputs {
		report.Coins = append(report.Coins, in.Holding.Coin())
		current.add(round2(in.Holding.USDValue()))
	}
	report.CurrentValue = current.Float64()

	for _, days := range TrendWindows {
		w := TrendWindow{Days: days, Coins: make([]string, 0, len(inputs))}
		var held, past total
		for _, in := range inputs {
			if in.Holding.Value.USDPrice == nil || *in.Holding.Value.USDPrice == 0 {
				continue
			}
			value, ok := pastValue(in.Past[days])
			if !ok {
				continue
			}
			w.Coins = append(w.Coins, in.Holding.Coin())
			held.add(round2(in.Holding.USDValue()))
			past.add(value)
			w.HasHistory = true
		}
		w.CurrentValue = held.Float64()
		w.PastValue = round2(past.Float64())
		if past.Float64() != 0 {
			w.ReturnRate = percentChange(w.CurrentValue, past.Float64())
		}
		report.Windows = append(report.Windows, w)
	}
	return report
}

func pastValue(cv *domain.CoinValue) (float64, bool) {
	if cv == nil {
		return 0, false
	}
	return cv.USDValue()
}
