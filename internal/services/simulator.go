package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/itamarh/voicedca/internal/marketdata"
	"github.com/itamarh/voicedca/internal/models"
)

// epsilon guards the unit computation against a zero or negative close.
const epsilon = 1e-9

// SimulatorService computes the realized return of a dollar-cost-averaging
// strategy against historical closes. Every failure is caught at this
// boundary and returned as a tagged SimulationError; a malformed date or a
// provider hiccup never propagates as a raw fault.
type SimulatorService struct {
	source marketdata.Source
	logger *logrus.Logger
	now    func() time.Time
}

// NewSimulatorService creates a new DCA simulator backed by the given
// market data source.
func NewSimulatorService(source marketdata.Source, logger *logrus.Logger) *SimulatorService {
	return &SimulatorService{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// SimulateDCA simulates an initial deposit at startDate (DD-MM-YYYY) plus a
// recurring deposit every intervalDays, priced against the nearest trading
// day, and reports invested capital, current value, profit and percentage
// return. Exactly one of the result or the error is non-nil.
func (s *SimulatorService) SimulateDCA(ctx context.Context, symbol, startDate string, startAmount, recurringAmount float64, intervalDays int) (*models.SimulationResult, *models.SimulationError) {
	start, err := models.ParseRequestDate(startDate)
	if err != nil {
		return nil, &models.SimulationError{Kind: models.FailureInput, Message: "invalid start date: " + startDate}
	}
	if startAmount < 0 || recurringAmount < 0 || intervalDays < 0 {
		return nil, &models.SimulationError{Kind: models.FailureInput, Message: "amounts and interval must not be negative"}
	}

	end := s.now().UTC().Truncate(24 * time.Hour)
	series, err := s.source.FetchDailyCloses(ctx, symbol, start, end)
	if err != nil || len(series) == 0 {
		msg := "no market data found for the security"
		if err != nil && !errors.Is(err, marketdata.ErrNoMarketData) {
			msg = err.Error()
		}
		return nil, &models.SimulationError{Kind: models.FailureTransient, Message: msg}
	}

	firstPrice := series.First().Close
	currentPrice := series.Last().Close

	var (
		totalUnits    float64
		totalInvested float64
		deposits      []models.DepositEvent
	)

	// Initial deposit
	if startAmount > 0 {
		totalUnits += startAmount / guardPrice(firstPrice)
		totalInvested += startAmount
		deposits = append(deposits, models.DepositEvent{Date: start, Amount: startAmount, Price: firstPrice})
	}

	// Recurring deposits. intervalDays of zero would never advance the
	// candidate date, so the loop is skipped entirely in that case.
	if recurringAmount > 0 && intervalDays > 0 {
		candidate := start.AddDate(0, 0, intervalDays)
		for !candidate.After(end) {
			price := series.Nearest(candidate).Close
			totalUnits += recurringAmount / guardPrice(price)
			totalInvested += recurringAmount
			deposits = append(deposits, models.DepositEvent{Date: candidate, Amount: recurringAmount, Price: price})
			candidate = candidate.AddDate(0, 0, intervalDays)
		}
	}

	currentValue := totalUnits * currentPrice
	profit := currentValue - totalInvested
	percent := 0.0
	if totalInvested > 0 {
		percent = profit / totalInvested * 100
	}

	result := &models.SimulationResult{
		Ticker:        symbol,
		StartDate:     start.Format(models.RequestDateFormat),
		EndDate:       end.Format(models.RequestDateFormat),
		FirstPrice:    models.Round2(firstPrice),
		CurrentPrice:  models.Round2(currentPrice),
		TotalInvested: models.Round2(totalInvested),
		CurrentValue:  models.Round2(currentValue),
		Profit:        models.Round2(profit),
		Percent:       models.Round2(percent),
		DepositsCount: len(deposits),
	}

	s.logger.WithFields(logrus.Fields{
		"ticker":         result.Ticker,
		"first_price":    result.FirstPrice,
		"current_price":  result.CurrentPrice,
		"total_invested": result.TotalInvested,
		"current_value":  result.CurrentValue,
		"profit":         result.Profit,
		"percent":        result.Percent,
		"deposits":       result.DepositsCount,
	}).Info("DCA simulation complete")

	return result, nil
}

func guardPrice(p float64) float64 {
	if p < epsilon {
		return epsilon
	}
	return p
}
