package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"coinScout/internal/ports"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
)

const (
	// Base URLs
	baseURLProduction = "https://api.binance.com"
	baseURLTestnet    = "https://testnet.binance.vision"
)

// Client implements ports.PriceOracle on top of the Binance spot ticker endpoint.
type Client struct {
	spotClient *binance.Client
	logger     ports.Logger
}

// Config holds configuration specific to the Binance client adapter.
type Config struct {
	APIKey     string
	SecretKey  string
	UseTestnet bool
	BaseURL    string // Overrides the production/testnet URL when set
	Logger     ports.Logger
}

// New creates a new Binance client adapter.
// Ticker prices are public, so empty keys are accepted.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client")
	}

	client := binance.NewClient(cfg.APIKey, cfg.SecretKey)

	switch {
	case cfg.BaseURL != "":
		client.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	case cfg.UseTestnet:
		client.BaseURL = baseURLTestnet
	default:
		client.BaseURL = baseURLProduction
	}
	cfg.Logger.Debug(context.Background(), "Binance client configured", map[string]interface{}{"baseURL": client.BaseURL})

	return &Client{spotClient: client, logger: cfg.Logger}, nil
}

// CurrentPrice returns the last traded price of asset in reference, e.g. ("ADA", "USDT") -> ADAUSDT.
func (c *Client) CurrentPrice(ctx context.Context, asset, reference string) (float64, error) {
	op := "CurrentPrice"
	symbol := strings.ToUpper(asset + reference)
	if asset == "" || reference == "" {
		return 0, c.handleError(ctx, fmt.Errorf("empty asset or reference in %q: %w", symbol, ports.ErrInvalidRequest), op)
	}

	prices, err := c.spotClient.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, c.handleError(ctx, err, op)
	}
	for _, p := range prices {
		if p.Symbol != symbol {
			continue
		}
		price, err := strconv.ParseFloat(p.Price, 64)
		if err != nil {
			return 0, c.handleError(ctx, fmt.Errorf("could not parse price '%s': %w", p.Price, err), op)
		}
		c.logger.Debug(ctx, "Fetched ticker price", map[string]interface{}{"symbol": symbol, "price": price})
		return price, nil
	}

	return 0, c.handleError(ctx, fmt.Errorf("no price returned for symbol %s: %w", symbol, ports.ErrNotFound), op)
}

// handleError translates Binance API and transport errors into ports errors.
// Every returned error wraps ports.ErrRateUnavailable.
func (c *Client) handleError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "originalError": err.Error()}

	var cause error
	var apiErr *common.APIError
	switch {
	case errors.As(err, &apiErr):
		fields["apiErrorCode"] = apiErr.Code
		fields["apiErrorMessage"] = apiErr.Message
		switch apiErr.Code {
		case -1003: // Too many requests
			cause = ports.ErrRateLimited
		case -1021: // Timestamp outside of the recvWindow
			cause = ports.ErrTimeout
		case -1100, -1101, -1102, -1103, -1104, -1105, -1106, -1121: // Parameter errors, including invalid symbol
			cause = ports.ErrInvalidRequest
		default:
			cause = ports.ErrUnknown
		}
	case errors.Is(err, ports.ErrInvalidRequest), errors.Is(err, ports.ErrNotFound):
		cause = nil // already classified by the caller
	case errors.Is(err, context.DeadlineExceeded):
		cause = ports.ErrTimeout
	case errors.Is(err, context.Canceled):
		cause = ports.ErrContextCanceled
	case strings.Contains(err.Error(), "connection refused"),
		strings.Contains(err.Error(), "connection reset by peer"),
		strings.Contains(err.Error(), "no such host"):
		cause = ports.ErrConnectionFailed
	default:
		cause = ports.ErrUnknown
	}

	c.logger.Error(ctx, err, operation+" failed", fields)
	if cause == nil {
		return fmt.Errorf("%s failed: %w: %w", operation, ports.ErrRateUnavailable, err)
	}
	return fmt.Errorf("%s failed: %w: %w: %w", operation, ports.ErrRateUnavailable, cause, err)
}
