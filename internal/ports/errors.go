package ports

import (
	"context"
	"errors"
)

// Analytics failure kinds. Every analytic is all-or-nothing: when one of these is
// returned no partial result is produced.
var (
	ErrStoreUnavailable  = errors.New("history store unavailable")
	ErrDataUnavailable   = errors.New("required history data unavailable")
	ErrConfigUnavailable = errors.New("scout configuration unavailable")
	ErrRateUnavailable   = errors.New("live exchange rate unavailable")
)

// Underlying causes. Adapters wrap these together with one of the failure kinds above.
var (
	ErrUnknown          = errors.New("unknown error occurred")
	ErrInvalidRequest   = errors.New("invalid request parameters or format")
	ErrNotFound         = errors.New("resource not found")
	ErrTimeout          = errors.New("operation timed out")
	ErrContextCanceled  = errors.New("operation canceled via context")
	ErrConnectionFailed = errors.New("failed to connect to the exchange")
	ErrRateLimited      = errors.New("API rate limit exceeded")
	ErrQueryFailed      = errors.New("database query failed")
)

// FailureKind is the stable category of an analytics failure.
type FailureKind int

const (
	KindNone FailureKind = iota
	KindStoreUnavailable
	KindDataUnavailable
	KindConfigUnavailable
	KindRateUnavailable
	KindCanceled
	KindUnknown
)

// KindOf maps an error to exactly one failure kind.
// The analytics kinds take precedence over their wrapped causes.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrDataUnavailable):
		return KindDataUnavailable
	case errors.Is(err, ErrConfigUnavailable):
		return KindConfigUnavailable
	case errors.Is(err, ErrRateUnavailable):
		return KindRateUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, ErrContextCanceled), errors.Is(err, ErrTimeout):
		return KindCanceled
	default:
		return KindUnknown
	}
}

// String returns a short identifier of the kind.
func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStoreUnavailable:
		return "store_unavailable"
	case KindDataUnavailable:
		return "data_unavailable"
	case KindConfigUnavailable:
		return "config_unavailable"
	case KindRateUnavailable:
		return "rate_unavailable"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Message returns the user-facing summary for the kind.
func (k FailureKind) Message() string {
	switch k {
	case KindNone:
		return ""
	case KindStoreUnavailable:
		return "Unable to perform actions on the database."
	case KindDataUnavailable:
		return "Unable to fetch the required information from the database."
	case KindConfigUnavailable:
		return "Unable to read bridge and scout multiplier from the user configuration."
	case KindRateUnavailable:
		return "Unable to fetch the current exchange rate."
	case KindCanceled:
		return "The request was canceled or timed out."
	default:
		return "Something went wrong, unable to generate the report at this time."
	}
}

// Hint returns an optional follow-up suggestion for the kind.
func (k FailureKind) Hint() string {
	switch k {
	case KindDataUnavailable:
		return "If a trade is in progress please try again after it has been completed."
	case KindConfigUnavailable:
		return "Make sure user.cfg exists and has a [binance_user_config] section."
	case KindRateUnavailable, KindCanceled:
		return "Please try again in a moment."
	default:
		return ""
	}
}
