package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/itamarh/voicedca/internal/models"
)

// fakeSource returns scripted responses per attempt.
type fakeSource struct {
	calls     int
	responses []fakeResponse
}

type fakeResponse struct {
	series models.PriceSeries
	err    error
}

func (f *fakeSource) FetchDailyCloses(_ context.Context, _ string, _, _ time.Time) (models.PriceSeries, error) {
	r := f.responses[f.calls]
	f.calls++
	return r.series, r.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func somePoint() models.PricePoint {
	return models.PricePoint{Date: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Close: 100}
}

func TestRetryingSource_SustainedEmptyExhaustsBudget(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{
		{series: nil}, {series: nil}, {series: nil},
	}}
	retrying := NewRetryingSource(source, 3, time.Millisecond, testLogger())

	series, err := retrying.FetchDailyCloses(context.Background(), "TSLA", time.Now().AddDate(-1, 0, 0), time.Now())

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMarketData)
	assert.Nil(t, series)
	assert.Equal(t, 3, source.calls, "must attempt exactly the retry budget")
}

func TestRetryingSource_SuccessStopsRetrying(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{
		{err: errors.New("rate limited")},
		{series: models.PriceSeries{somePoint()}},
		{err: errors.New("should never be reached")},
	}}
	retrying := NewRetryingSource(source, 3, time.Millisecond, testLogger())

	series, err := retrying.FetchDailyCloses(context.Background(), "TSLA", time.Now().AddDate(-1, 0, 0), time.Now())

	assert.NoError(t, err)
	assert.Len(t, series, 1)
	assert.Equal(t, 2, source.calls, "must return immediately after the first success")
}

func TestRetryingSource_ImmediateSuccess(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{
		{series: models.PriceSeries{somePoint()}},
	}}
	retrying := NewRetryingSource(source, 3, time.Millisecond, testLogger())

	_, err := retrying.FetchDailyCloses(context.Background(), "TSLA", time.Now().AddDate(-1, 0, 0), time.Now())

	assert.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}

func TestRetryingSource_SurfacesLastError(t *testing.T) {
	source := &fakeSource{responses: []fakeResponse{
		{err: errors.New("first failure")},
		{err: errors.New("second failure")},
	}}
	retrying := NewRetryingSource(source, 2, time.Millisecond, testLogger())

	_, err := retrying.FetchDailyCloses(context.Background(), "TSLA", time.Now().AddDate(-1, 0, 0), time.Now())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "second failure")
}
