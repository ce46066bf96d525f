package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"coinScout/internal/domain"
	"coinScout/internal/ports"
)

const tradeColumns = `id, alt_coin_id, crypto_coin_id, selling, state,
	       alt_starting_balance, alt_trade_amount, crypto_starting_balance, crypto_trade_amount, datetime`

// tradeQuery builds a parameterized trade_history query from a filter.
// It is the one place trade lookups are expressed, so every "latest before" /
// "earliest after" lookup shares the same predicates.
type tradeQuery struct {
	where []string
	args  []interface{}
}

func newTradeQuery(f ports.TradeFilter) *tradeQuery {
	q := &tradeQuery{}
	if f.Coin != "" {
		q.add("alt_coin_id = ?", f.Coin)
	}
	if f.State != "" {
		q.add("state = ?", string(f.State))
	}
	if f.Selling != nil {
		q.add("selling = ?", *f.Selling)
	}
	return q
}

func (q *tradeQuery) add(clause string, arg interface{}) *tradeQuery {
	q.where = append(q.where, clause)
	q.args = append(q.args, arg)
	return q
}

func (q *tradeQuery) sql(order string, limit int) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(tradeColumns)
	sb.WriteString("\n\tFROM trade_history")
	if len(q.where) > 0 {
		sb.WriteString("\n\tWHERE ")
		sb.WriteString(strings.Join(q.where, " AND "))
	}
	sb.WriteString("\n\tORDER BY ")
	sb.WriteString(order)
	sb.WriteString("\n\tLIMIT ?")
	return sb.String(), append(q.args, limit)
}

// LatestTradeBefore returns the newest trade matching f strictly before `before`.
func (s *snapshot) LatestTradeBefore(ctx context.Context, f ports.TradeFilter, before time.Time) (*domain.TradeRecord, error) {
	q := newTradeQuery(f)
	if !before.IsZero() {
		q.add("datetime < ?", formatTime(before))
	}
	query, args := q.sql("datetime DESC, id DESC", 1)
	return s.queryOneTrade(ctx, "latest trade", query, args)
}

// EarliestTradeAfter returns the oldest trade matching f strictly after `after`.
func (s *snapshot) EarliestTradeAfter(ctx context.Context, f ports.TradeFilter, after time.Time) (*domain.TradeRecord, error) {
	query, args := newTradeQuery(f).add("datetime > ?", formatTime(after)).sql("datetime ASC, id ASC", 1)
	return s.queryOneTrade(ctx, "earliest trade", query, args)
}

// RecentTrades returns up to limit trades matching f, newest first.
func (s *snapshot) RecentTrades(ctx context.Context, f ports.TradeFilter, limit int) ([]*domain.TradeRecord, error) {
	if limit <= 0 {
		return []*domain.TradeRecord{}, nil
	}
	query, args := newTradeQuery(f).sql("datetime DESC, id DESC", limit)
	return s.queryTrades(ctx, "recent trades", query, args...)
}

// PositionsOfRecord returns the highest-id trade of every coin.
func (s *snapshot) PositionsOfRecord(ctx context.Context) ([]*domain.TradeRecord, error) {
	const query = `
	SELECT ` + tradeColumns + `
	FROM trade_history th
	WHERE th.id = (SELECT MAX(id) FROM trade_history WHERE alt_coin_id = th.alt_coin_id)
	ORDER BY th.alt_coin_id`
	return s.queryTrades(ctx, "positions of record", query)
}

func (s *snapshot) queryOneTrade(ctx context.Context, what, query string, args []interface{}) (*domain.TradeRecord, error) {
	tr, err := scanTrade(s.tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug(ctx, "No trade found", map[string]interface{}{"lookup": what})
			return nil, nil // Not an error, just not found
		}
		return nil, queryFailed(what, err)
	}
	return tr, nil
}

func (s *snapshot) queryTrades(ctx context.Context, what, query string, args ...interface{}) ([]*domain.TradeRecord, error) {
	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryFailed(what, err)
	}
	defer rows.Close()

	trades := make([]*domain.TradeRecord, 0)
	for rows.Next() {
		tr, err := scanTrade(rows)
		if err != nil {
			return nil, queryFailed(what, err)
		}
		trades = append(trades, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(what, err)
	}
	return trades, nil
}
