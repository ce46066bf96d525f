package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinScout/config"
	"coinScout/internal/analytics"
	"coinScout/internal/domain"
	"coinScout/internal/ports"
)

// Mock implementations
type mockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.debugMsgs = append(m.debugMsgs, msg)
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.errorMsgs = append(m.errorMsgs, msg)
}

type deposit struct {
	amount float64
	at     time.Time
}

// mockHistory is an in-memory HistoryStore. Every Snapshot shares the same rows.
type mockHistory struct {
	trades       []*domain.TradeRecord
	values       []*domain.CoinValue
	deposits     []deposit
	observations map[string][]*domain.ScoutObservation

	snapshotErr error
	queryErr    error
	opened      int
	closed      int
}

func (m *mockHistory) Snapshot(ctx context.Context) (ports.HistorySnapshot, error) {
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	m.opened++
	return &mockSnapshot{h: m}, nil
}

func (m *mockHistory) Close() error { return nil }

type mockSnapshot struct {
	h *mockHistory
}

func (s *mockSnapshot) Close() error {
	s.h.closed++
	return nil
}

func matches(f ports.TradeFilter, t *domain.TradeRecord) bool {
	if f.Coin != "" && f.Coin != t.AltCoin {
		return false
	}
	if f.State != "" && f.State != t.State {
		return false
	}
	if f.Selling != nil && *f.Selling != t.Selling {
		return false
	}
	return true
}

// sortedTrades returns the trades matching f, newest first.
func (s *mockSnapshot) sortedTrades(f ports.TradeFilter) []*domain.TradeRecord {
	out := make([]*domain.TradeRecord, 0)
	for _, t := range s.h.trades {
		if matches(f, t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Datetime.Equal(out[j].Datetime) {
			return out[i].Datetime.After(out[j].Datetime)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *mockSnapshot) LatestTradeBefore(ctx context.Context, f ports.TradeFilter, before time.Time) (*domain.TradeRecord, error) {
	if s.h.queryErr != nil {
		return nil, s.h.queryErr
	}
	for _, t := range s.sortedTrades(f) {
		if before.IsZero() || t.Datetime.Before(before) {
			return t, nil
		}
	}
	return nil, nil
}

func (s *mockSnapshot) EarliestTradeAfter(ctx context.Context, f ports.TradeFilter, after time.Time) (*domain.TradeRecord, error) {
	trades := s.sortedTrades(f)
	for i := len(trades) - 1; i >= 0; i-- {
		if trades[i].Datetime.After(after) {
			return trades[i], nil
		}
	}
	return nil, nil
}

func (s *mockSnapshot) RecentTrades(ctx context.Context, f ports.TradeFilter, limit int) ([]*domain.TradeRecord, error) {
	if s.h.queryErr != nil {
		return nil, s.h.queryErr
	}
	trades := s.sortedTrades(f)
	if len(trades) > limit {
		trades = trades[:limit]
	}
	return trades, nil
}

func (s *mockSnapshot) PositionsOfRecord(ctx context.Context) ([]*domain.TradeRecord, error) {
	if s.h.queryErr != nil {
		return nil, s.h.queryErr
	}
	byCoin := make(map[string]*domain.TradeRecord)
	for _, t := range s.h.trades {
		if cur, ok := byCoin[t.AltCoin]; !ok || t.ID > cur.ID {
			byCoin[t.AltCoin] = t
		}
	}
	out := make([]*domain.TradeRecord, 0, len(byCoin))
	for _, t := range byCoin {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AltCoin < out[j].AltCoin })
	return out, nil
}

func (s *mockSnapshot) LatestSnapshots(ctx context.Context) ([]*domain.CoinValue, error) {
	var last time.Time
	for _, cv := range s.h.values {
		if cv.Datetime.After(last) {
			last = cv.Datetime
		}
	}
	out := make([]*domain.CoinValue, 0)
	for _, cv := range s.h.values {
		if cv.Datetime.Equal(last) {
			out = append(out, cv)
		}
	}
	return out, nil
}

func (s *mockSnapshot) FirstSnapshotAtOrAfter(ctx context.Context, coin string, at time.Time) (*domain.CoinValue, error) {
	var first *domain.CoinValue
	for _, cv := range s.h.values {
		if cv.Coin != coin || cv.Datetime.Before(at) {
			continue
		}
		if first == nil || cv.Datetime.Before(first.Datetime) {
			first = cv
		}
	}
	return first, nil
}

func (s *mockSnapshot) DepositsBetween(ctx context.Context, from, to time.Time) (float64, int, error) {
	var total float64
	var count int
	for _, d := range s.h.deposits {
		if d.at.After(from) && d.at.Before(to) {
			total += d.amount
			count++
		}
	}
	return total, count, nil
}

func (s *mockSnapshot) LatestScoutObservations(ctx context.Context, fromCoin string) ([]*domain.ScoutObservation, error) {
	return s.h.observations[fromCoin], nil
}

type mockOracle struct {
	price float64
	err   error
	calls []string
}

func (m *mockOracle) CurrentPrice(ctx context.Context, asset, reference string) (float64, error) {
	m.calls = append(m.calls, asset+reference)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("price lookup without deadline")
	}
	return m.price, m.err
}

// --- Fixtures ---

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fp(v float64) *float64 { return &v }

func trade(id int64, coin string, selling bool, state domain.TradeState, alt, bridge float64, at time.Time) *domain.TradeRecord {
	return &domain.TradeRecord{
		ID:                    id,
		AltCoin:               coin,
		CryptoCoin:            "USDT",
		Selling:               selling,
		State:                 state,
		AltTradeAmount:        fp(alt),
		CryptoStartingBalance: fp(bridge),
		CryptoTradeAmount:     fp(bridge),
		Datetime:              at,
	}
}

func coinValue(coin string, balance, usd float64, at time.Time) *domain.CoinValue {
	return &domain.CoinValue{Coin: coin, Balance: fp(balance), USDPrice: fp(usd), BTCPrice: fp(0), Datetime: at}
}

func testConfig() *config.Config {
	return &config.Config{ProgressLimit: 15, HistoryLimit: 10, PriceTimeout: time.Second}
}

var testParams = domain.ScoutParams{Bridge: "USDT", ScoutMultiplier: 3}

func newTestService(t *testing.T, h *mockHistory, o *mockOracle) (*ReportService, *mockLogger) {
	t.Helper()
	log := &mockLogger{}
	svc, err := NewReportService(testConfig(), log, h, o)
	require.NoError(t, err)
	svc.now = func() time.Time { return testNow }
	t.Cleanup(func() {
		assert.Equal(t, h.opened, h.closed, "every snapshot must be closed")
	})
	return svc, log
}

func TestNewReportService(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		logger  ports.Logger
		store   ports.HistoryStore
		oracle  ports.PriceOracle
		wantErr bool
	}{
		{
			name:    "valid configuration",
			cfg:     testConfig(),
			logger:  &mockLogger{},
			store:   &mockHistory{},
			oracle:  &mockOracle{},
			wantErr: false,
		},
		{
			name:    "missing store",
			cfg:     testConfig(),
			logger:  &mockLogger{},
			oracle:  &mockOracle{},
			wantErr: true,
		},
		{
			name:    "missing oracle",
			cfg:     testConfig(),
			logger:  &mockLogger{},
			store:   &mockHistory{},
			wantErr: true,
		},
		{
			name:    "invalid progress limit",
			cfg:     &config.Config{ProgressLimit: 0, HistoryLimit: 10, PriceTimeout: time.Second},
			logger:  &mockLogger{},
			store:   &mockHistory{},
			oracle:  &mockOracle{},
			wantErr: true,
		},
		{
			name:    "invalid price timeout",
			cfg:     &config.Config{ProgressLimit: 15, HistoryLimit: 10},
			logger:  &mockLogger{},
			store:   &mockHistory{},
			oracle:  &mockOracle{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewReportService(tt.cfg, tt.logger, tt.store, tt.oracle)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestReportService_Valuation(t *testing.T) {
	h := &mockHistory{
		trades: []*domain.TradeRecord{
			trade(1, "X", false, domain.StateComplete, 100, 50, testNow.Add(-48*time.Hour)),
			trade(2, "Y", false, domain.StateOrdered, 0, 40, testNow.Add(-time.Minute)),
		},
		values: []*domain.CoinValue{
			coinValue("X", 100, 0.5, testNow.Add(-time.Hour)),
			coinValue("X", 100, 0.6, testNow),
			coinValue("Y", 0, 1, testNow),
		},
	}
	svc, log := newTestService(t, h, &mockOracle{})

	report, err := svc.Valuation(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Coins, 1)
	assert.Equal(t, "X", report.Coins[0].Coin)
	assert.Equal(t, 60.0, report.Coins[0].USDValue)
	assert.Equal(t, 20.0, report.Coins[0].ChangePct)
	require.Len(t, report.Pending, 1)
	assert.Equal(t, "Y", report.Pending[0].Coin)
	assert.Equal(t, 60.0, report.Total.USDValue)
	assert.True(t, report.LastUpdate.Equal(testNow))

	assert.Equal(t, 1, h.opened)
	assert.Contains(t, log.infoMsgs, "Report requested")
	assert.Empty(t, log.errorMsgs)
}

func errOnly(_ interface{}, err error) error { return err }

func TestReportService_Failures(t *testing.T) {
	storeDown := fmt.Errorf("failed to open: %w", ports.ErrStoreUnavailable)
	queryDown := fmt.Errorf("failed to query: %w: %w", ports.ErrStoreUnavailable, ports.ErrQueryFailed)

	ctx := context.Background()
	calls := map[string]func(*ReportService) error{
		"valuation": func(s *ReportService) error { return errOnly(s.Valuation(ctx)) },
		"trend":     func(s *ReportService) error { return errOnly(s.Trend(ctx)) },
		"progress":  func(s *ReportService) error { return errOnly(s.Progress(ctx)) },
		"ratios":    func(s *ReportService) error { return errOnly(s.Ratios(ctx, testParams)) },
		"rotation":  func(s *ReportService) error { return errOnly(s.Rotation(ctx, testParams)) },
		"panic":     func(s *ReportService) error { return errOnly(s.Panic(ctx, testParams)) },
		"history":   func(s *ReportService) error { return errOnly(s.History(ctx)) },
	}

	for name, call := range calls {
		t.Run(name+" store unavailable", func(t *testing.T) {
			h := &mockHistory{snapshotErr: storeDown}
			svc, log := newTestService(t, h, &mockOracle{})
			err := call(svc)
			require.Error(t, err)
			assert.Equal(t, ports.KindStoreUnavailable, ports.KindOf(err))
			assert.NotEmpty(t, log.errorMsgs)
		})
		t.Run(name+" query failed", func(t *testing.T) {
			h := &mockHistory{queryErr: queryDown}
			svc, _ := newTestService(t, h, &mockOracle{})
			err := call(svc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ports.ErrQueryFailed)
			assert.Equal(t, 1, h.closed, "snapshot released on failure")
		})
	}
}

func TestReportService_Valuation_NoTrades(t *testing.T) {
	h := &mockHistory{values: []*domain.CoinValue{coinValue("X", 100, 0.6, testNow)}}
	svc, log := newTestService(t, h, &mockOracle{})

	_, err := svc.Valuation(context.Background())
	require.Error(t, err)
	assert.Equal(t, ports.KindDataUnavailable, ports.KindOf(err))
	assert.Contains(t, log.warnMsgs, "Report data unavailable")
}

func TestReportService_Trend(t *testing.T) {
	h := &mockHistory{
		trades: []*domain.TradeRecord{
			trade(1, "X", false, domain.StateComplete, 100, 50, testNow.Add(-5*24*time.Hour)),
			trade(2, "X", true, domain.StateComplete, 100, 55, testNow.Add(-2*24*time.Hour)),
			trade(3, "X", false, domain.StateComplete, 100, 55, testNow.Add(-12*time.Hour)),
		},
		values: []*domain.CoinValue{
			coinValue("X", 100, 0.4, testNow.Add(-5*24*time.Hour+time.Minute)),
			coinValue("X", 100, 0.5, testNow.Add(-12*time.Hour)),
			coinValue("X", 100, 0.6, testNow),
		},
	}
	svc, _ := newTestService(t, h, &mockOracle{})

	report, err := svc.Trend(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"X"}, report.Coins)
	assert.Equal(t, 60.0, report.CurrentValue)
	require.Len(t, report.Windows, 2)
	assert.Equal(t, 1, report.Windows[0].Days)
	assert.Equal(t, 20.0, report.Windows[0].ReturnRate, "snapshot at the buy instant")
	assert.Equal(t, 7, report.Windows[1].Days)
	assert.Equal(t, 50.0, report.Windows[1].ReturnRate, "first snapshot after the earliest buy")
}

func TestReportService_Trend_NoHistory(t *testing.T) {
	h := &mockHistory{
		trades: []*domain.TradeRecord{trade(1, "X", false, domain.StateComplete, 100, 50, testNow.Add(-30*24*time.Hour))},
		values: []*domain.CoinValue{coinValue("X", 100, 0.6, testNow)},
	}
	svc, _ := newTestService(t, h, &mockOracle{})

	report, err := svc.Trend(context.Background())
	require.NoError(t, err)
	for _, w := range report.Windows {
		assert.Zero(t, w.ReturnRate)
		assert.False(t, w.HasHistory)
	}
}

func TestReportService_Progress(t *testing.T) {
	h := &mockHistory{
		trades: []*domain.TradeRecord{
			trade(1, "ADA", false, domain.StateComplete, 100, 50, testNow.Add(-72*time.Hour)),
			trade(2, "ADA", true, domain.StateComplete, 100, 52, testNow.Add(-48*time.Hour)),
			trade(3, "ETH", false, domain.StateComplete, 1, 52, testNow.Add(-47*time.Hour)),
			trade(4, "ADA", false, domain.StateComplete, 110, 55, testNow),
		},
		deposits: []deposit{
			{amount: 11, at: testNow.Add(-24 * time.Hour)},
			{amount: 1000, at: testNow.Add(-100 * time.Hour)},
		},
	}
	svc, _ := newTestService(t, h, &mockOracle{})

	progress, err := svc.Progress(context.Background())
	require.NoError(t, err)
	require.Len(t, progress, 3)

	latest := progress[0]
	assert.Equal(t, "ADA", latest.Coin)
	require.NotNil(t, latest.RawChange)
	assert.InDelta(t, 10.0, *latest.RawChange, 1e-9)
	assert.InDelta(t, 22.0, latest.DepositedAmount, 1e-9)
	assert.InDelta(t, -12.0, *latest.Change, 1e-9)
	days, hours, ok := latest.ElapsedDaysHours()
	require.True(t, ok)
	assert.Equal(t, 3, days)
	assert.Equal(t, 0, hours)

	assert.Equal(t, "ETH", progress[1].Coin)
	assert.Nil(t, progress[1].Change, "first buy of ETH")
	assert.Equal(t, "ADA", progress[2].Coin)
	assert.Nil(t, progress[2].Change, "first buy of ADA")
}

func TestReportService_Progress_Limit(t *testing.T) {
	h := &mockHistory{}
	for i := 0; i < 20; i++ {
		h.trades = append(h.trades, trade(int64(i+1), "ADA", false, domain.StateComplete, float64(100+i), 50, testNow.Add(time.Duration(i)*time.Hour)))
	}
	svc, _ := newTestService(t, h, &mockOracle{})

	progress, err := svc.Progress(context.Background())
	require.NoError(t, err)
	assert.Len(t, progress, 15)
	assert.Equal(t, 119.0, progress[0].Amount)
}

func TestReportService_Ratios(t *testing.T) {
	h := &mockHistory{
		trades: []*domain.TradeRecord{
			trade(1, "ETH", false, domain.StateComplete, 1, 2000, testNow.Add(-time.Hour)),
			trade(2, "ADA", false, domain.StateComplete, 100, 50, testNow),
		},
		observations: map[string][]*domain.ScoutObservation{
			"ADA": {
				{ID: 1, FromCoin: "ADA", ToCoin: "ETH", TargetRatio: 0.0002, CurrentCoinPrice: 0.5, OtherCoinPrice: 2000, Datetime: testNow},
				{ID: 2, FromCoin: "ADA", ToCoin: "XRP", TargetRatio: 1, CurrentCoinPrice: 0.5, OtherCoinPrice: 0.45, Datetime: testNow},
			},
		},
	}

	t.Run("latest trade's coin", func(t *testing.T) {
		svc, _ := newTestService(t, h, &mockOracle{})
		report, err := svc.Ratios(context.Background(), testParams)
		require.NoError(t, err)
		assert.Equal(t, "ADA", report.Coin)
		require.Len(t, report.Ratios, 2)
		assert.Equal(t, "XRP", report.Ratios[0].Coin)
	})

	t.Run("invalid params", func(t *testing.T) {
		svc, _ := newTestService(t, h, &mockOracle{})
		_, err := svc.Ratios(context.Background(), domain.ScoutParams{ScoutMultiplier: 1})
		require.Error(t, err)
		assert.Equal(t, ports.KindConfigUnavailable, ports.KindOf(err))
	})

	t.Run("no trades", func(t *testing.T) {
		svc, _ := newTestService(t, &mockHistory{}, &mockOracle{})
		_, err := svc.Ratios(context.Background(), testParams)
		require.Error(t, err)
		assert.Equal(t, ports.KindDataUnavailable, ports.KindOf(err))
	})

	t.Run("no scout history", func(t *testing.T) {
		svc, _ := newTestService(t, &mockHistory{trades: h.trades}, &mockOracle{})
		_, err := svc.Ratios(context.Background(), testParams)
		require.Error(t, err)
		assert.Equal(t, ports.KindDataUnavailable, ports.KindOf(err))
	})
}

func TestReportService_Rotation(t *testing.T) {
	h := &mockHistory{
		trades: []*domain.TradeRecord{
			trade(1, "ADA", false, domain.StateComplete, 100, 50, testNow.Add(-time.Hour)),
			trade(2, "DOGE", false, domain.StateComplete, 10, 1, testNow.Add(-2*time.Hour)),
		},
		values: []*domain.CoinValue{
			coinValue("ADA", 100, 0.6, testNow),
			coinValue("DOGE", 10, 0.1, testNow),
		},
		observations: map[string][]*domain.ScoutObservation{
			"ADA":  {{ID: 1, FromCoin: "ADA", ToCoin: "ETH", TargetRatio: 0.95, CurrentCoinPrice: 100, OtherCoinPrice: 105.03, Datetime: testNow}},
			"DOGE": {{ID: 2, FromCoin: "DOGE", ToCoin: "ETH", TargetRatio: 1, CurrentCoinPrice: 1, OtherCoinPrice: 1, Datetime: testNow}},
		},
	}
	svc, _ := newTestService(t, h, &mockOracle{})

	report, err := svc.Rotation(context.Background(), testParams)
	require.NoError(t, err)
	require.Len(t, report.Coins, 1, "dust positions have no rotation")
	assert.Equal(t, "ADA", report.Coins[0].Coin)
	require.Len(t, report.Coins[0].Targets, 1)
	assert.InDelta(t, 105.0263, report.Coins[0].Targets[0].TargetPrice, 1e-4)
	assert.InDelta(t, 1.0, report.Coins[0].Targets[0].Percentage, 1e-4)
}

func TestReportService_Panic(t *testing.T) {
	bought := trade(1, "ADA", false, domain.StateComplete, 100, 50, testNow)
	buying := trade(1, "ADA", false, domain.StateOrdered, 100, 50, testNow)
	sold := trade(1, "ADA", true, domain.StateComplete, 100, 60, testNow)
	selling := trade(1, "ADA", true, domain.StateOrdered, 100, 60, testNow)
	buyingNoAmounts := trade(1, "ADA", false, domain.StateOrdered, 0, 50, testNow)
	buyingNoAmounts.AltTradeAmount = nil
	buyingNoAmounts.CryptoTradeAmount = nil
	rateDown := fmt.Errorf("ticker: %w: %w", ports.ErrRateUnavailable, ports.ErrTimeout)

	tests := []struct {
		name      string
		trades    []*domain.TradeRecord
		params    domain.ScoutParams
		oracle    *mockOracle
		want      analytics.Disposition
		wantKind  ports.FailureKind
		wantCalls int
	}{
		{name: "bought", trades: []*domain.TradeRecord{bought}, params: testParams, oracle: &mockOracle{price: 0.6}, want: analytics.DispositionBought, wantCalls: 1},
		{name: "buying", trades: []*domain.TradeRecord{buying}, params: testParams, oracle: &mockOracle{price: 0.45}, want: analytics.DispositionBuying, wantCalls: 1},
		{name: "buying without amounts", trades: []*domain.TradeRecord{buyingNoAmounts}, params: testParams, oracle: &mockOracle{price: 0.45}, want: analytics.DispositionBuying, wantCalls: 1},
		{name: "sold", trades: []*domain.TradeRecord{sold}, params: testParams, oracle: &mockOracle{}, want: analytics.DispositionSold, wantCalls: 0},
		{name: "selling", trades: []*domain.TradeRecord{selling}, params: testParams, oracle: &mockOracle{price: 0.66}, want: analytics.DispositionSelling, wantCalls: 1},
		{name: "no trades", params: testParams, oracle: &mockOracle{}, want: analytics.DispositionFailed, wantKind: ports.KindDataUnavailable},
		{name: "config unavailable", trades: []*domain.TradeRecord{bought}, oracle: &mockOracle{}, want: analytics.DispositionFailed, wantKind: ports.KindConfigUnavailable},
		{name: "rate unavailable", trades: []*domain.TradeRecord{bought}, params: testParams, oracle: &mockOracle{err: rateDown}, want: analytics.DispositionFailed, wantKind: ports.KindRateUnavailable, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, &mockHistory{trades: tt.trades}, tt.oracle)
			report, err := svc.Panic(context.Background(), tt.params)

			assert.Equal(t, tt.want, report.Disposition)
			assert.Len(t, tt.oracle.calls, tt.wantCalls)
			if tt.wantKind != ports.KindNone {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, ports.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ADA", report.Coin)
			if tt.wantCalls > 0 {
				assert.Equal(t, []string{"ADAUSDT"}, tt.oracle.calls)
				assert.Equal(t, tt.oracle.price, report.PriceNow)
			}
		})
	}
}

func TestReportService_History(t *testing.T) {
	h := &mockHistory{}
	for i := 0; i < 12; i++ {
		h.trades = append(h.trades, trade(int64(i+1), "ADA", i%2 == 1, domain.StateComplete, 100, 50, testNow.Add(time.Duration(i)*time.Minute)))
	}
	pending := trade(13, "ETH", false, domain.StateStarting, 0, 50, testNow.Add(time.Hour))
	pending.AltTradeAmount = nil
	h.trades = append(h.trades, pending)

	svc, _ := newTestService(t, h, &mockOracle{})
	entries, err := svc.History(context.Background())
	require.NoError(t, err)

	assert.Len(t, entries, 9, "ten newest trades minus the one without an amount")
	assert.True(t, entries[0].Datetime.Equal(testNow.Add(11*time.Minute)))
	assert.Equal(t, domain.SideSell, entries[0].Side)
}
