package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itamarh/voicedca/internal/models"
)

func TestBuildSuccessNarration(t *testing.T) {
	result := &models.SimulationResult{
		Ticker:        "TSLA",
		StartDate:     "01-01-2023",
		EndDate:       "01-06-2023",
		FirstPrice:    108.1,
		CurrentPrice:  203.93,
		TotalInvested: 1500,
		CurrentValue:  2410.55,
		Profit:        910.55,
		Percent:       60.7,
		DepositsCount: 6,
	}

	text := BuildSuccessNarration("Tesla", 1000, 100, result)

	assert.Contains(t, text, "Tesla")
	// Date narrated with spaces so the voice reads digits, not a range.
	assert.Contains(t, text, "01 01 2023")
	assert.Contains(t, text, "1000 shekels")
	assert.Contains(t, text, "100 more shekels")
	assert.Contains(t, text, "108.1 dollars")
	assert.Contains(t, text, "203.93 dollars")
	assert.Contains(t, text, "1500 shekels")
	assert.Contains(t, text, "2411 shekels")
	assert.Contains(t, text, "911 shekels")
	assert.Contains(t, text, "60.7 percent")
	assert.Contains(t, text, "sole responsibility of the user")
}

func TestBuildErrorNarration(t *testing.T) {
	text := BuildErrorNarration("no market data found for the security")

	assert.Contains(t, text, "An error occurred")
	assert.Contains(t, text, "no market data found for the security")
	assert.Contains(t, text, "try again later")
}
