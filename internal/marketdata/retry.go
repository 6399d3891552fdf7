package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"

	"github.com/itamarh/voicedca/internal/models"
)

// RetryingSource wraps a Source with a bounded, fixed-delay retry. An empty
// series counts as a failure just like a transport error: market data
// providers frequently return empty results transiently (stale caches, rate
// limiting), so empty is never accepted as a terminal success. The last
// error encountered surfaces once the attempt budget runs out.
type RetryingSource struct {
	source      Source
	maxAttempts int
	delay       time.Duration
	logger      *logrus.Logger
}

var _ Source = (*RetryingSource)(nil)

// NewRetryingSource wraps source with maxAttempts total attempts separated
// by a fixed delay.
func NewRetryingSource(source Source, maxAttempts int, delay time.Duration, logger *logrus.Logger) *RetryingSource {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryingSource{
		source:      source,
		maxAttempts: maxAttempts,
		delay:       delay,
		logger:      logger,
	}
}

// FetchDailyCloses fetches the series, retrying on any error or empty result
// until the attempt budget is exhausted.
func (r *RetryingSource) FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) (models.PriceSeries, error) {
	attempt := 0
	operation := func() (models.PriceSeries, error) {
		attempt++
		series, err := r.source.FetchDailyCloses(ctx, symbol, start, end)
		if err == nil && len(series) == 0 {
			err = fmt.Errorf("%w: empty series for %s", ErrNoMarketData, symbol)
		}
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"symbol":  symbol,
				"attempt": attempt,
				"max":     r.maxAttempts,
			}).WithError(err).Warn("market data fetch failed")
			return nil, err
		}
		return series, nil
	}

	series, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(r.delay)),
		backoff.WithMaxTries(uint(r.maxAttempts)),
	)
	if err != nil {
		return nil, err
	}
	return series, nil
}
