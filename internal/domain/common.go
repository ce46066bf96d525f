package domain

// TradeState represents the lifecycle state of a trade row written by the trading bot.
type TradeState string

const (
	StateStarting TradeState = "STARTING"
	StateOrdered  TradeState = "ORDERED"
	StateComplete TradeState = "COMPLETE"
)

// TradeSide is the direction of a trade relative to the alt coin.
type TradeSide string

const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// Protocol constants shared with the external trading bot. They must stay in step
// with the bot's own scouting code, never tuned independently.
const (
	// MaterialityFloor is the minimum position value, in bridge units, for a coin to be reported.
	MaterialityFloor = 10.0

	// RatioFeeRate is the per-multiplier fee used when ranking coin ratios.
	RatioFeeRate = 0.001

	// RotationFeeRate is the per-multiplier fee used when predicting the next coin jump.
	RotationFeeRate = 0.00075
)
