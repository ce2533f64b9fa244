package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"calorie-coach-bot/internal/features/profile/models"
)

func TestComputeTargetReference(t *testing.T) {
	p := &models.Profile{
		WeightKg:      65,
		HeightCm:      170,
		AgeYears:      25,
		Gender:        models.GenderMale,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalLose,
	}

	// bmr = 650 + 1062.5 - 125 + 5 = 1592.5, tdee = round(1592.5*1.55) = 2468
	assert.InDelta(t, 1592.5, BMR(p.WeightKg, p.HeightCm, p.AgeYears, p.Gender), 1e-9)
	assert.Equal(t, 1968, ComputeTarget(p))
}

func TestComputeTargetDeterministic(t *testing.T) {
	p := &models.Profile{
		WeightKg:      82.4,
		HeightCm:      178,
		AgeYears:      41,
		Gender:        models.GenderFemale,
		ActivityLevel: models.ActivityHigh,
		Goal:          models.GoalGain,
	}

	first := ComputeTarget(p)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ComputeTarget(p))
	}
}

func TestComputeTargetGoals(t *testing.T) {
	base := models.Profile{
		WeightKg:      70,
		HeightCm:      175,
		AgeYears:      30,
		Gender:        models.GenderMale,
		ActivityLevel: models.ActivityLow,
	}

	maintain := base
	maintain.Goal = models.GoalMaintain
	lose := base
	lose.Goal = models.GoalLose
	gain := base
	gain.Goal = models.GoalGain

	m := ComputeTarget(&maintain)
	assert.Equal(t, m-500, ComputeTarget(&lose))
	assert.Equal(t, m+300, ComputeTarget(&gain))
}

func TestBMRGenderOffsets(t *testing.T) {
	male := BMR(60, 160, 30, models.GenderMale)
	female := BMR(60, 160, 30, models.GenderFemale)
	assert.InDelta(t, 166, male-female, 1e-9)
}

func TestComputeTargetNoClamping(t *testing.T) {
	// A very light, old profile on a cut can go below zero; the model
	// accepts the result as-is.
	p := &models.Profile{
		WeightKg:      21,
		HeightCm:      51,
		AgeYears:      100,
		Gender:        models.GenderFemale,
		ActivityLevel: models.ActivityLow,
		Goal:          models.GoalLose,
	}
	assert.Less(t, ComputeTarget(p), 0)
}
