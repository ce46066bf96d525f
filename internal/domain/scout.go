package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ScoutObservation is one scouting record for a coin pair: the prices seen and the
// target ratio in force when the bot compared them.
type ScoutObservation struct {
	ID               int64
	PairID           int64
	FromCoin         string
	ToCoin           string
	TargetRatio      float64
	CurrentCoinPrice float64 // Price of FromCoin
	OtherCoinPrice   float64 // Price of ToCoin
	Datetime         time.Time
}

// ScoutParams are the two trading bot settings the analytics mirror.
type ScoutParams struct {
	Bridge          string  // Bridge/reference coin symbol, e.g. "USDT"
	ScoutMultiplier float64 // Fee safety factor applied before ratio comparisons
}

// Validate checks the params are usable.
func (p ScoutParams) Validate() error {
	if strings.TrimSpace(p.Bridge) == "" {
		return fmt.Errorf("bridge symbol is empty")
	}
	if math.IsNaN(p.ScoutMultiplier) || math.IsInf(p.ScoutMultiplier, 0) || p.ScoutMultiplier < 0 {
		return fmt.Errorf("scout multiplier %v is not a non-negative number", p.ScoutMultiplier)
	}
	return nil
}
