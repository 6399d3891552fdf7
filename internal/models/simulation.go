package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestDateFormat is the wire format for dates coming from the IVR flow.
const RequestDateFormat = "02-01-2006"

// ParseRequestDate parses a DD-MM-YYYY date as sent by the IVR flow.
func ParseRequestDate(s string) (time.Time, error) {
	return time.Parse(RequestDateFormat, s)
}

// DepositEvent records one simulated purchase. Date is the requested calendar
// date, which may not be a trading day; Price is the close of the nearest
// trading day that was actually used.
type DepositEvent struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Price  float64   `json:"price"`
}

// SimulationResult represents the outcome of a DCA simulation. Monetary and
// price fields are rounded to 2 decimal places for presentation; accumulation
// inside the simulator uses unrounded values.
type SimulationResult struct {
	Ticker        string  `json:"ticker"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	FirstPrice    float64 `json:"first_price"`
	CurrentPrice  float64 `json:"current_price"`
	TotalInvested float64 `json:"total_invested"`
	CurrentValue  float64 `json:"current_value"`
	Profit        float64 `json:"profit"`
	Percent       float64 `json:"percent"`
	DepositsCount int     `json:"deposits_count"`
}

// FailureKind classifies a simulation failure so the original error category
// is not lost in the message string.
type FailureKind string

const (
	// FailureInput covers malformed caller input such as an unparseable date.
	FailureInput FailureKind = "input"
	// FailureTransient covers upstream data errors that exhausted retries.
	FailureTransient FailureKind = "transient"
	// FailureInternal covers everything else caught at the simulator boundary.
	FailureInternal FailureKind = "internal"
)

// SimulationError is the failure half of a simulation: a human-readable
// reason tagged with its category. A simulation yields either a result or a
// SimulationError, never both.
type SimulationError struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (e *SimulationError) Error() string { return e.Message }

// Round2 rounds a value to 2 decimal places for presentation.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
