package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"coinScout/internal/domain"
	"coinScout/internal/ports"
)

// LatestScoutObservations returns the newest scout_history row of every pair that starts at
// fromCoin and ends at an enabled coin, newest first.
func (s *snapshot) LatestScoutObservations(ctx context.Context, fromCoin string) ([]*domain.ScoutObservation, error) {
	const query = `
	SELECT sh.id, sh.pair_id, p.from_coin_id, p.to_coin_id,
	       sh.target_ratio, sh.current_coin_price, sh.other_coin_price, sh.datetime
	FROM scout_history sh
	JOIN pairs p ON p.id = sh.pair_id
	JOIN coins c ON c.symbol = p.to_coin_id
	WHERE p.from_coin_id = ?
	  AND c.enabled = 1
	  AND sh.id = (SELECT MAX(sh2.id) FROM scout_history sh2 WHERE sh2.pair_id = sh.pair_id)
	ORDER BY sh.datetime DESC, p.to_coin_id ASC`

	what := fmt.Sprintf("scout history of %s", fromCoin)
	rows, err := s.tx.QueryContext(ctx, query, fromCoin)
	if err != nil {
		return nil, queryFailed(what, err)
	}
	defer rows.Close()

	out := make([]*domain.ScoutObservation, 0)
	for rows.Next() {
		o := &domain.ScoutObservation{}
		var target, current, other sql.NullFloat64
		var at dbTime
		if err := rows.Scan(&o.ID, &o.PairID, &o.FromCoin, &o.ToCoin, &target, &current, &other, &at); err != nil {
			return nil, queryFailed(what, err)
		}
		if !target.Valid || !current.Valid || !other.Valid || !at.Valid {
			return nil, fmt.Errorf("scout history row %d of %s->%s has empty fields: %w", o.ID, o.FromCoin, o.ToCoin, ports.ErrDataUnavailable)
		}
		o.TargetRatio = target.Float64
		o.CurrentCoinPrice = current.Float64
		o.OtherCoinPrice = other.Float64
		o.Datetime = at.Time
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(what, err)
	}
	return out, nil
}
