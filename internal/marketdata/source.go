// Package marketdata fetches historical daily closing prices for a symbol.
package marketdata

import (
	"context"
	"errors"
	"time"

	"github.com/itamarh/voicedca/internal/models"
)

// ErrNoMarketData indicates the provider returned no trading days for the
// requested range after the retry budget was exhausted.
var ErrNoMarketData = errors.New("no market data")

// Source fetches daily closing prices for a symbol over a date range,
// ordered by date ascending. Implementations return trading days only.
type Source interface {
	FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) (models.PriceSeries, error)
}
