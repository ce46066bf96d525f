package utils

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"coinScout/internal/analytics"
)

func WriteTradeHistoryCSV(w io.Writer, entries []analytics.TradeEntry) error {
	writer := csv.NewWriter(w)

	// Write header
	writer.Write([]string{"datetime", "side", "coin", "amount", "bridge", "bridge_amount", "state"})

	for _, e := range entries {
		writer.Write([]string{
			e.Datetime.Format(time.RFC3339),
			string(e.Side),
			e.Coin,
			formatFloat(e.Amount),
			e.Bridge,
			formatOptional(e.BridgeAmount),
			string(e.State),
		})
	}
	writer.Flush()
	return writer.Error()
}

// WriteProgressCSV writes one row per buy. Change columns are empty for the first buy of a coin.
func WriteProgressCSV(w io.Writer, progress []analytics.CoinProgress) error {
	writer := csv.NewWriter(w)

	writer.Write([]string{"traded_at", "coin", "amount", "bridge", "bridge_amount", "previous_at", "raw_change", "deposited_amount", "change", "change_pct"})

	for _, p := range progress {
		previousAt := ""
		if p.PreviousAt != nil {
			previousAt = p.PreviousAt.Format(time.RFC3339)
		}
		writer.Write([]string{
			p.TradedAt.Format(time.RFC3339),
			p.Coin,
			formatFloat(p.Amount),
			p.Bridge,
			formatFloat(p.BridgeAmount),
			previousAt,
			formatOptional(p.RawChange),
			formatFloat(p.DepositedAmount),
			formatOptional(p.Change),
			formatOptional(p.ChangePct),
		})
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
