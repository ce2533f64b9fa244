// Package onboarding implements the guided interview that collects a
// new user's anthropometrics before the bot starts counting calories.
package onboarding

import (
	"strconv"
	"strings"

	"calorie-coach-bot/internal/features/energy"
	"calorie-coach-bot/internal/features/profile/models"
)

// Physiological bounds for interview answers. A value that parses but
// falls outside its range is treated exactly like an unparseable one.
const (
	minWeightKg = 20
	maxWeightKg = 300
	minHeightCm = 50
	maxHeightCm = 250
	minAgeYears = 10
	maxAgeYears = 100
)

var genderTokens = map[string]models.Gender{
	"m":         models.GenderMale,
	"male":      models.GenderMale,
	"man":       models.GenderMale,
	"l":         models.GenderMale,
	"laki":      models.GenderMale,
	"laki-laki": models.GenderMale,
	"pria":      models.GenderMale,
	"f":         models.GenderFemale,
	"female":    models.GenderFemale,
	"woman":     models.GenderFemale,
	"p":         models.GenderFemale,
	"perempuan": models.GenderFemale,
	"wanita":    models.GenderFemale,
}

var activityTokens = map[string]models.ActivityLevel{
	"low":      models.ActivityLow,
	"moderate": models.ActivityModerate,
	"high":     models.ActivityHigh,
}

var goalTokens = map[string]models.Goal{
	"lose":     models.GoalLose,
	"maintain": models.GoalMaintain,
	"gain":     models.GoalGain,
}

type FSM struct{}

func New() *FSM {
	return &FSM{}
}

// HandleAnswer validates one interview answer against the profile's
// current phase. A valid answer stores its field and advances the
// phase; an invalid one leaves the profile untouched and re-asks the
// same question. The returned string is the outbound reply.
func (f *FSM) HandleAnswer(p *models.Profile, answer string) string {
	answer = strings.TrimSpace(answer)

	switch p.OnboardingPhase {
	case models.PhaseAskWeight:
		w, err := strconv.ParseFloat(answer, 64)
		if err != nil || w < minWeightKg || w > maxWeightKg {
			return retryMessage(p.OnboardingPhase)
		}
		p.WeightKg = w
		p.OnboardingPhase = models.PhaseAskHeight
		return Question(p.OnboardingPhase)

	case models.PhaseAskHeight:
		h, err := strconv.ParseFloat(answer, 64)
		if err != nil || h < minHeightCm || h > maxHeightCm {
			return retryMessage(p.OnboardingPhase)
		}
		p.HeightCm = h
		p.OnboardingPhase = models.PhaseAskAge
		return Question(p.OnboardingPhase)

	case models.PhaseAskAge:
		age, err := strconv.Atoi(answer)
		if err != nil || age < minAgeYears || age > maxAgeYears {
			return retryMessage(p.OnboardingPhase)
		}
		p.AgeYears = age
		p.OnboardingPhase = models.PhaseAskGender
		return Question(p.OnboardingPhase)

	case models.PhaseAskGender:
		gender, ok := genderTokens[strings.ToLower(answer)]
		if !ok {
			return retryMessage(p.OnboardingPhase)
		}
		p.Gender = gender
		p.OnboardingPhase = models.PhaseAskActivity
		return Question(p.OnboardingPhase)

	case models.PhaseAskActivity:
		level, ok := activityTokens[strings.ToLower(answer)]
		if !ok {
			return retryMessage(p.OnboardingPhase)
		}
		p.ActivityLevel = level
		p.OnboardingPhase = models.PhaseAskGoal
		return Question(p.OnboardingPhase)

	case models.PhaseAskGoal:
		goal, ok := goalTokens[strings.ToLower(answer)]
		if !ok {
			return retryMessage(p.OnboardingPhase)
		}
		p.Goal = goal
		p.DailyCalorieTarget = energy.ComputeTarget(p)
		p.OnboardingPhase = models.PhaseDone
		return summaryMessage(p)
	}

	// PhaseDone has no outgoing transition; the dispatcher never routes
	// a completed profile here.
	return ""
}
