package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"coinScout/internal/analytics"
	"coinScout/internal/utils"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatCSV  = "csv"

	timeLayout = "2006-01-02 15:04:05"
)

// valueReport is the answer of the value command.
type valueReport struct {
	Valuation analytics.ValuationReport `yaml:"valuation"`
	Trend     analytics.TrendReport     `yaml:"trend"`
}

// render writes result in the requested format.
func render(out io.Writer, format string, result interface{}) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	if format == formatCSV {
		switch r := result.(type) {
		case []analytics.TradeEntry:
			return utils.WriteTradeHistoryCSV(out, r)
		case []analytics.CoinProgress:
			return utils.WriteProgressCSV(out, r)
		default:
			return fmt.Errorf("csv output is only available for history and progress")
		}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	switch r := result.(type) {
	case valueReport:
		writeValuation(w, r.Valuation)
		writeTrend(w, r.Trend)
	case []analytics.CoinProgress:
		writeProgress(w, r)
	case analytics.RatioReport:
		writeRatios(w, r)
	case analytics.RotationReport:
		writeRotation(w, r)
	case analytics.PanicReport:
		writePanic(w, r)
	case []analytics.TradeEntry:
		writeHistory(w, r)
	default:
		return fmt.Errorf("no text rendering for %T", result)
	}
	return w.Flush()
}

func writeValuation(w io.Writer, r analytics.ValuationReport) {
	fmt.Fprintf(w, "Last update: %s\n\n", r.LastUpdate.Format(timeLayout))
	fmt.Fprintln(w, "Coin\tBalance\tUSD Price\tBought for\tValue\tChange\tBTC value\t")
	for _, c := range r.Coins {
		fmt.Fprintf(w, "%s\t%g\t%g\t%.2f %s\t%.2f USD\t%.2f%%\t%g BTC\t\n",
			c.Coin, c.Balance, c.USDPrice, c.BoughtFor, c.Bridge, c.USDValue, c.ChangePct, c.BTCValue)
	}
	t := r.Total
	fmt.Fprintf(w, "Total\t\t\t%.2f %s\t%.2f USD\t%.2f%%\t%g BTC\t\n", t.BoughtFor, t.Bridge, t.USDValue, t.ChangePct, t.BTCValue)

	for _, p := range r.Pending {
		fmt.Fprintf(w, "\nPending %s of %s (%s), %.2f %s committed. Not included in the total.\n",
			p.Side, p.Coin, p.State, p.OrderSize, p.Bridge)
	}
}

func writeTrend(w io.Writer, r analytics.TrendReport) {
	fmt.Fprintln(w)
	for _, tw := range r.Windows {
		if !tw.HasHistory {
			fmt.Fprintf(w, "%d day change:\tn/a\t\n", tw.Days)
			continue
		}
		fmt.Fprintf(w, "%d day change:\t%.2f%%\t\n", tw.Days, tw.ReturnRate)
	}
}

func writeProgress(w io.Writer, progress []analytics.CoinProgress) {
	fmt.Fprintln(w, "Date\tCoin\tAmount\tPrice\tChange\tElapsed\t")
	for _, p := range progress {
		change, elapsed := "n/a", "n/a"
		if p.Change != nil {
			change = fmt.Sprintf("%+g", *p.Change)
			if p.ChangePct != nil {
				change += fmt.Sprintf(" (%+.2f%%)", *p.ChangePct)
			}
		}
		if days, hours, ok := p.ElapsedDaysHours(); ok {
			elapsed = fmt.Sprintf("%dd %dh", days, hours)
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%.2f %s\t%s\t%s\t\n",
			p.TradedAt.Format(timeLayout), p.Coin, p.Amount, p.BridgeAmount, p.Bridge, change, elapsed)
	}
}

func writeRatios(w io.Writer, r analytics.RatioReport) {
	fmt.Fprintf(w, "Current coin: %s (last update %s)\n\n", r.Coin, r.LastUpdate.Format(timeLayout))
	fmt.Fprintln(w, "Coin\tPrice\tRatio\t")
	for _, c := range r.Ratios {
		fmt.Fprintf(w, "%s\t%g %s\t%g\t\n", c.Coin, c.Price, r.Bridge, c.Ratio)
	}
}

func writeRotation(w io.Writer, r analytics.RotationReport) {
	for i, c := range r.Coins {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", c.Coin)
		fmt.Fprintln(w, "Target\tPrice\tJump at\tDistance\tObserved\t")
		for _, t := range c.Targets {
			fmt.Fprintf(w, "%s\t%g %s\t%g %s\t%.2f%%\t%s\t\n",
				t.Coin, t.Price, r.Bridge, t.TargetPrice, r.Bridge, t.Percent(), t.ObservedAt.Format(timeLayout))
		}
	}
}

func writePanic(w io.Writer, r analytics.PanicReport) {
	fmt.Fprintln(w, int(r.Disposition))
	switch r.Disposition {
	case analytics.DispositionBought:
		fmt.Fprintf(w, "Holding %g %s bought at %g %s.\n", r.Amount, r.Coin, r.PriceThen, r.Bridge)
		fmt.Fprintf(w, "Selling now at %g %s gives %.2f %s (%+.2f%%).\n", r.PriceNow, r.Bridge, r.CurrentValue, r.Bridge, r.ChangePct)
	case analytics.DispositionBuying:
		writeOpenOrder(w, "Buy", r)
	case analytics.DispositionSold:
		fmt.Fprintf(w, "%s was sold, funds are in %s. Stopping is safe.\n", r.Coin, r.Bridge)
	case analytics.DispositionSelling:
		writeOpenOrder(w, "Sell", r)
	}
}

func writeOpenOrder(w io.Writer, side string, r analytics.PanicReport) {
	if r.PriceThen == 0 {
		fmt.Fprintf(w, "%s order of %s open, market is %g %s.\n", side, r.Coin, r.PriceNow, r.Bridge)
	} else {
		fmt.Fprintf(w, "%s order of %g %s open at %g %s, market is %g %s (%+.2f%%).\n",
			side, r.Amount, r.Coin, r.PriceThen, r.Bridge, r.PriceNow, r.Bridge, r.ChangePct)
	}
	fmt.Fprintln(w, "Stopping cancels the order.")
}

func writeHistory(w io.Writer, entries []analytics.TradeEntry) {
	fmt.Fprintln(w, "Date\tSide\tCoin\tAmount\tBridge amount\tState\t")
	for _, e := range entries {
		bridgeAmount := "n/a"
		if e.BridgeAmount != nil {
			bridgeAmount = fmt.Sprintf("%g %s", *e.BridgeAmount, e.Bridge)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\t%s\t\n",
			e.Datetime.Format(timeLayout), e.Side, e.Coin, e.Amount, bridgeAmount, e.State)
	}
}
