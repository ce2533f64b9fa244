// Package energy computes a user's daily calorie target from their
// anthropometrics using the Mifflin-St Jeor equation.
package energy

import (
	"math"

	"calorie-coach-bot/internal/features/profile/models"
)

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivityLow:      1.2,
	models.ActivityModerate: 1.55,
	models.ActivityHigh:     1.725,
}

var goalAdjustments = map[models.Goal]int{
	models.GoalLose:     -500,
	models.GoalMaintain: 0,
	models.GoalGain:     300,
}

// BMR returns the basal metabolic rate in kcal.
func BMR(weightKg, heightCm float64, ageYears int, gender models.Gender) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender == models.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// ComputeTarget returns the daily calorie target for an onboarded
// profile. Rounding happens exactly once, on the TDEE; the goal
// adjustment is applied to the rounded value. Implausible inputs are
// not clamped.
func ComputeTarget(p *models.Profile) int {
	bmr := BMR(p.WeightKg, p.HeightCm, p.AgeYears, p.Gender)
	tdee := int(math.Round(bmr * activityMultipliers[p.ActivityLevel]))
	return tdee + goalAdjustments[p.Goal]
}
