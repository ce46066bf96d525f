package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coinScout/internal/domain"
)

const coinValueColumns = `id, coin_id, balance, usd_price, btc_price, "interval", datetime`

// LatestSnapshots returns every coin value written at the globally newest instant,
// so all coins are valued at the same moment.
func (s *snapshot) LatestSnapshots(ctx context.Context) ([]*domain.CoinValue, error) {
	const query = `
	SELECT ` + coinValueColumns + `
	FROM coin_value
	WHERE datetime = (SELECT MAX(datetime) FROM coin_value)
	ORDER BY coin_id`

	rows, err := s.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, queryFailed("latest coin values", err)
	}
	defer rows.Close()

	values := make([]*domain.CoinValue, 0)
	for rows.Next() {
		cv, err := scanCoinValue(rows)
		if err != nil {
			return nil, queryFailed("latest coin values", err)
		}
		values = append(values, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("latest coin values", err)
	}
	return values, nil
}

// FirstSnapshotAtOrAfter returns the oldest coin value of coin at or after `at`.
func (s *snapshot) FirstSnapshotAtOrAfter(ctx context.Context, coin string, at time.Time) (*domain.CoinValue, error) {
	const query = `
	SELECT ` + coinValueColumns + `
	FROM coin_value
	WHERE coin_id = ? AND datetime >= ?
	ORDER BY datetime ASC, id ASC
	LIMIT 1`

	cv, err := scanCoinValue(s.tx.QueryRowContext(ctx, query, coin, formatTime(at)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed(fmt.Sprintf("coin value of %s", coin), err)
	}
	return cv, nil
}

// DepositsBetween sums deposits strictly between from and to.
// Databases without a deposits table have no deposits.
func (s *snapshot) DepositsBetween(ctx context.Context, from, to time.Time) (float64, int, error) {
	ok, err := s.depositsTableExists(ctx)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, nil
	}

	const query = `
	SELECT COALESCE(SUM(usd_amount), 0), COUNT(*)
	FROM deposits
	WHERE datetime > ? AND datetime < ?`

	var total float64
	var count int
	if err := s.tx.QueryRowContext(ctx, query, formatTime(from), formatTime(to)).Scan(&total, &count); err != nil {
		return 0, 0, queryFailed("deposits", err)
	}
	return total, count, nil
}

func (s *snapshot) depositsTableExists(ctx context.Context) (bool, error) {
	if s.hasDeposits != nil {
		return *s.hasDeposits, nil
	}
	const query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'deposits'`
	var n int
	if err := s.tx.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return false, queryFailed("schema", err)
	}
	exists := n > 0
	if !exists {
		s.logger.Debug(ctx, "No deposits table, deposit correction disabled")
	}
	s.hasDeposits = &exists
	return exists, nil
}
