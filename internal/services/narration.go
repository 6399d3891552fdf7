package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/itamarh/voicedca/internal/models"
)

// Narration text is assembled from short sentences so the synthesized voice
// pauses naturally. Deposit amounts are narrated as whole shekels while
// prices stay in dollars, matching what the IVR flow collects and what the
// market data reports.

// BuildSuccessNarration builds the spoken summary of a successful
// simulation.
func BuildSuccessNarration(displayName string, startAmount, monthlyAmount float64, r *models.SimulationResult) string {
	var b strings.Builder
	b.WriteString("Here is your result. ")
	fmt.Fprintf(&b, "The security you chose is %s. ", displayName)
	fmt.Fprintf(&b, "You started investing on %s. ", strings.ReplaceAll(r.StartDate, "-", " "))
	fmt.Fprintf(&b, "With an initial amount of %d shekels. ", roundInt(startAmount))
	fmt.Fprintf(&b, "And you added %d more shekels every month. ", roundInt(monthlyAmount))
	fmt.Fprintf(&b, "The price on the day of your first deposit was %v dollars. ", r.FirstPrice)
	fmt.Fprintf(&b, "The price now stands at %v dollars. ", r.CurrentPrice)
	fmt.Fprintf(&b, "In total you deposited %d shekels. ", roundInt(r.TotalInvested))
	fmt.Fprintf(&b, "And the current value of your investment is %d shekels. ", roundInt(r.CurrentValue))
	fmt.Fprintf(&b, "Your total profit stands at %d shekels. ", roundInt(r.Profit))
	fmt.Fprintf(&b, "Which is a return of %v percent. ", r.Percent)
	b.WriteString("Please note, the figures were pulled from live sources and may differ slightly from official records. ")
	b.WriteString("Use of this information is at the sole responsibility of the user.")
	return b.String()
}

// BuildErrorNarration builds the spoken message for any failed outcome.
func BuildErrorNarration(errMsg string) string {
	return fmt.Sprintf(
		"An error occurred. %s. Please note, the data may be slightly delayed or incomplete. Please try again later.",
		errMsg)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
