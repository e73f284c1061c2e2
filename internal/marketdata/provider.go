package marketdata

import (
	"context"
	"errors"
	"time"

	"github.com/bradchang-ux/stock-backtest/internal/domain/models"
)

// ErrNoData is returned when the provider has no bars for the requested
// symbol and range (unknown symbol, delisted, or range before listing).
// Handlers map it to a user-visible "data unavailable" response.
var ErrNoData = errors.New("no data returned for symbol")

// Provider fetches daily OHLCV bars for a symbol over a date range.
//
// Implementations return bars sorted ascending by date with one bar per
// trading day. They do not retry and do not cache; both concerns belong
// to the caller.
type Provider interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]models.DailyBar, error)
}
