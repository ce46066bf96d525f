package app

import (
	"context"
	"fmt"
	"time"

	"coinScout/config"
	"coinScout/internal/analytics"
	"coinScout/internal/domain"
	"coinScout/internal/ports"
)

// ReportService answers one portfolio question per call. Each call reads from its own
// history snapshot, which is released before the call returns.
type ReportService struct {
	cfg    *config.Config
	logger ports.Logger
	store  ports.HistoryStore
	oracle ports.PriceOracle
	now    func() time.Time
}

// NewReportService creates a new application service instance.
func NewReportService(
	cfg *config.Config,
	logger ports.Logger,
	store ports.HistoryStore,
	oracle ports.PriceOracle,
) (*ReportService, error) {

	// Validate dependencies
	if cfg == nil || logger == nil || store == nil || oracle == nil {
		return nil, fmt.Errorf("missing required dependencies for ReportService")
	}

	// Validate config values needed by service
	if cfg.ProgressLimit <= 0 {
		return nil, fmt.Errorf("configuration ProgressLimit must be positive")
	}
	if cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("configuration HistoryLimit must be positive")
	}
	if cfg.PriceTimeout <= 0 {
		return nil, fmt.Errorf("configuration PriceTimeout must be positive")
	}

	return &ReportService{
		cfg:    cfg,
		logger: logger,
		store:  store,
		oracle: oracle,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// withSnapshot runs fn on a fresh snapshot and logs the outcome under report.
func (s *ReportService) withSnapshot(ctx context.Context, report string, fn func(ports.HistorySnapshot) error) error {
	s.logger.Info(ctx, "Report requested", map[string]interface{}{"report": report})

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return s.failed(ctx, report, err)
	}
	defer func() {
		if cerr := snap.Close(); cerr != nil {
			s.logger.Warn(ctx, "Failed to close history snapshot", map[string]interface{}{"report": report, "error": cerr})
		}
	}()

	if err := fn(snap); err != nil {
		return s.failed(ctx, report, err)
	}
	return nil
}

func (s *ReportService) failed(ctx context.Context, report string, err error) error {
	kind := ports.KindOf(err)
	fields := map[string]interface{}{"report": report, "kind": kind.String()}
	if kind == ports.KindDataUnavailable {
		s.logger.Warn(ctx, "Report data unavailable", fields)
	} else {
		s.logger.Error(ctx, err, "Unable to build report", fields)
	}
	return err
}

func checkParams(params domain.ScoutParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid scout parameters: %w: %w", ports.ErrConfigUnavailable, err)
	}
	return nil
}

// Valuation reports the value of every position at the latest snapshot instant.
func (s *ReportService) Valuation(ctx context.Context) (analytics.ValuationReport, error) {
	var report analytics.ValuationReport
	err := s.withSnapshot(ctx, "current value", func(snap ports.HistorySnapshot) error {
		positions, err := snap.PositionsOfRecord(ctx)
		if err != nil {
			return err
		}
		current, err := snap.LatestSnapshots(ctx)
		if err != nil {
			return err
		}
		report, err = analytics.Valuation(positions, current)
		return err
	})
	if err != nil {
		return analytics.ValuationReport{}, err
	}
	return report, nil
}

// Trend reports the portfolio return over each of analytics.TrendWindows.
func (s *ReportService) Trend(ctx context.Context) (analytics.TrendReport, error) {
	var report analytics.TrendReport
	err := s.withSnapshot(ctx, "value trend", func(snap ports.HistorySnapshot) error {
		holdings, err := s.holdings(ctx, snap)
		if err != nil {
			return err
		}

		now := s.now()
		inputs := make([]analytics.TrendInput, 0, len(holdings))
		for _, h := range holdings {
			in := analytics.TrendInput{Holding: h, Past: make(map[int]*domain.CoinValue, len(analytics.TrendWindows))}
			for _, days := range analytics.TrendWindows {
				since := now.Add(-time.Duration(days) * 24 * time.Hour)
				filter := ports.TradeFilter{Coin: h.Coin(), State: domain.StateComplete, Selling: ports.Buying}
				first, err := snap.EarliestTradeAfter(ctx, filter, since)
				if err != nil {
					return err
				}
				if first == nil {
					continue
				}
				in.Past[days], err = snap.FirstSnapshotAtOrAfter(ctx, h.Coin(), first.Datetime)
				if err != nil {
					return err
				}
			}
			inputs = append(inputs, in)
		}
		report = analytics.Trend(inputs)
		return nil
	})
	if err != nil {
		return analytics.TrendReport{}, err
	}
	return report, nil
}

// Progress reports the coin amount gained between consecutive completed buys.
func (s *ReportService) Progress(ctx context.Context) ([]analytics.CoinProgress, error) {
	var progress []analytics.CoinProgress
	err := s.withSnapshot(ctx, "progress", func(snap ports.HistorySnapshot) error {
		buys := ports.TradeFilter{State: domain.StateComplete, Selling: ports.Buying}
		trades, err := snap.RecentTrades(ctx, buys, s.cfg.ProgressLimit)
		if err != nil {
			return err
		}

		inputs := make([]analytics.ProgressInput, 0, len(trades))
		for _, th1 := range trades {
			in := analytics.ProgressInput{Trade: th1}
			sameCoin := buys
			sameCoin.Coin = th1.AltCoin
			in.Previous, err = snap.LatestTradeBefore(ctx, sameCoin, th1.Datetime)
			if err != nil {
				return err
			}
			if in.Previous != nil {
				in.Deposits, _, err = snap.DepositsBetween(ctx, in.Previous.Datetime, th1.Datetime)
				if err != nil {
					return err
				}
			}
			inputs = append(inputs, in)
		}
		progress, err = analytics.Progress(inputs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// Ratios ranks the counterparts of the coin traded last by adjusted price ratio.
func (s *ReportService) Ratios(ctx context.Context, params domain.ScoutParams) (analytics.RatioReport, error) {
	var report analytics.RatioReport
	err := s.withSnapshot(ctx, "current ratios", func(snap ports.HistorySnapshot) error {
		if err := checkParams(params); err != nil {
			return err
		}
		latest, err := snap.LatestTradeBefore(ctx, ports.TradeFilter{}, time.Time{})
		if err != nil {
			return err
		}
		if latest == nil || latest.AltCoin == "" {
			return fmt.Errorf("no current coin: %w", ports.ErrDataUnavailable)
		}
		observations, err := snap.LatestScoutObservations(ctx, latest.AltCoin)
		if err != nil {
			return err
		}
		report, err = analytics.Ratios(latest.AltCoin, observations, params)
		return err
	})
	if err != nil {
		return analytics.RatioReport{}, err
	}
	return report, nil
}

// Rotation predicts the prices at which the bot would jump out of each held coin.
func (s *ReportService) Rotation(ctx context.Context, params domain.ScoutParams) (analytics.RotationReport, error) {
	var report analytics.RotationReport
	err := s.withSnapshot(ctx, "next coin", func(snap ports.HistorySnapshot) error {
		if err := checkParams(params); err != nil {
			return err
		}
		holdings, err := s.holdings(ctx, snap)
		if err != nil {
			return err
		}

		inputs := make([]analytics.RotationInput, 0, len(holdings))
		for _, h := range holdings {
			observations, err := snap.LatestScoutObservations(ctx, h.Coin())
			if err != nil {
				return err
			}
			inputs = append(inputs, analytics.RotationInput{Coin: h.Coin(), Observations: observations})
		}
		report, err = analytics.Rotation(inputs, params)
		return err
	})
	if err != nil {
		return analytics.RotationReport{}, err
	}
	return report, nil
}

// Panic describes the latest trade for a stop decision. A live price is fetched only
// after the snapshot is released. Failures carry analytics.DispositionFailed.
func (s *ReportService) Panic(ctx context.Context, params domain.ScoutParams) (analytics.PanicReport, error) {
	failed := analytics.PanicReport{Disposition: analytics.DispositionFailed}

	var trade *domain.TradeRecord
	err := s.withSnapshot(ctx, "panic", func(snap ports.HistorySnapshot) error {
		if err := checkParams(params); err != nil {
			return err
		}
		var err error
		trade, err = snap.LatestTradeBefore(ctx, ports.TradeFilter{}, time.Time{})
		return err
	})
	if err != nil {
		return failed, err
	}

	var priceNow float64
	if trade != nil && analytics.NeedsLiveRate(trade) {
		priceCtx, cancel := context.WithTimeout(ctx, s.cfg.PriceTimeout)
		defer cancel()
		priceNow, err = s.oracle.CurrentPrice(priceCtx, trade.AltCoin, trade.CryptoCoin)
		if err != nil {
			return failed, s.failed(ctx, "panic", err)
		}
	}

	report, err := analytics.Panic(trade, priceNow)
	if err != nil {
		return failed, s.failed(ctx, "panic", err)
	}
	return report, nil
}

// History lists the latest trades, newest first.
func (s *ReportService) History(ctx context.Context) ([]analytics.TradeEntry, error) {
	var entries []analytics.TradeEntry
	err := s.withSnapshot(ctx, "trade history", func(snap ports.HistorySnapshot) error {
		trades, err := snap.RecentTrades(ctx, ports.TradeFilter{}, s.cfg.HistoryLimit)
		if err != nil {
			return err
		}
		entries = analytics.History(trades)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// holdings returns the material positions at the latest snapshot instant.
// A store without any trade has no current coin to report on.
func (s *ReportService) holdings(ctx context.Context, snap ports.HistorySnapshot) ([]analytics.Holding, error) {
	positions, err := snap.PositionsOfRecord(ctx)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no trades recorded: %w", ports.ErrDataUnavailable)
	}
	current, err := snap.LatestSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.MaterialHoldings(positions, current)
}
