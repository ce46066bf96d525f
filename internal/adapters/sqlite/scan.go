package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"coinScout/internal/domain"
)

// timeLayout is how the trading bot writes datetimes. Bound parameters use the same
// layout so text comparisons in SQL order correctly.
const timeLayout = "2006-01-02 15:04:05.000000"

var parseLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006-01-02",
}

// formatTime renders t for comparison against stored datetimes (UTC, microseconds).
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// dbTime scans both driver-parsed time.Time values and raw text columns.
type dbTime struct {
	Time  time.Time
	Valid bool
}

func (t *dbTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported datetime type %T", src)
	}
}

func (t *dbTime) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("unrecognized datetime %q", s)
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// scanTrade scans a row selected with tradeColumns.
func scanTrade(s scanner) (*domain.TradeRecord, error) {
	tr := &domain.TradeRecord{}
	var altCoin, cryptoCoin, state sql.NullString
	var selling sql.NullBool
	var altStart, altAmount, cryptoStart, cryptoAmount sql.NullFloat64
	var at dbTime
	err := s.Scan(&tr.ID, &altCoin, &cryptoCoin, &selling, &state,
		&altStart, &altAmount, &cryptoStart, &cryptoAmount, &at)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	tr.AltCoin = altCoin.String
	tr.CryptoCoin = cryptoCoin.String
	tr.Selling = selling.Valid && selling.Bool
	tr.State = domain.TradeState(state.String)
	tr.AltStartingBalance = floatPtr(altStart)
	tr.AltTradeAmount = floatPtr(altAmount)
	tr.CryptoStartingBalance = floatPtr(cryptoStart)
	tr.CryptoTradeAmount = floatPtr(cryptoAmount)
	if at.Valid {
		tr.Datetime = at.Time
	}
	return tr, nil
}

// scanCoinValue scans a row selected with coinValueColumns.
func scanCoinValue(s scanner) (*domain.CoinValue, error) {
	cv := &domain.CoinValue{}
	var coin, interval sql.NullString
	var balance, usdPrice, btcPrice sql.NullFloat64
	var at dbTime
	if err := s.Scan(&cv.ID, &coin, &balance, &usdPrice, &btcPrice, &interval, &at); err != nil {
		return nil, err
	}
	cv.Coin = coin.String
	cv.Balance = floatPtr(balance)
	cv.USDPrice = floatPtr(usdPrice)
	cv.BTCPrice = floatPtr(btcPrice)
	cv.Interval = interval.String
	if at.Valid {
		cv.Datetime = at.Time
	}
	return cv, nil
}
