// Package ledger maintains the running total of calories a user has
// consumed today.
package ledger

import (
	"math"
	"time"

	"calorie-coach-bot/internal/features/profile/models"
)

// Apply adds a detected calorie amount to the profile's daily total
// and stamps the activity time. A zero or negative detection means the
// message was not food; the profile is left untouched. There is no
// decrement and no upper clamp.
func Apply(p *models.Profile, caloriesDetected int) {
	if caloriesDetected <= 0 {
		return
	}
	p.CaloriesConsumedToday += caloriesDetected
	p.LastActiveAt = time.Now()
}

// Progress returns the consumed share of the daily target as a
// percentage capped at 100. Display only; it is never written back.
func Progress(p *models.Profile) int {
	if p.DailyCalorieTarget <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(p.CaloriesConsumedToday) / float64(p.DailyCalorieTarget)))
	if pct > 100 {
		return 100
	}
	return pct
}
