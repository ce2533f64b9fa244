package onboarding

import (
	"fmt"

	"calorie-coach-bot/internal/features/profile/models"
)

var questions = map[models.Phase]string{
	models.PhaseAskWeight:   "What's your weight in kg? (e.g. 65)",
	models.PhaseAskHeight:   "What's your height in cm? (e.g. 170)",
	models.PhaseAskAge:      "How old are you?",
	models.PhaseAskGender:   "What's your gender? (M/F)",
	models.PhaseAskActivity: "How active are you? (low / moderate / high)",
	models.PhaseAskGoal:     "What's your goal? (lose / maintain / gain)",
}

var retryNotices = map[models.Phase]string{
	models.PhaseAskWeight:   fmt.Sprintf("Hmm, that doesn't look like a valid weight (%d-%d kg).", minWeightKg, maxWeightKg),
	models.PhaseAskHeight:   fmt.Sprintf("Hmm, that doesn't look like a valid height (%d-%d cm).", minHeightCm, maxHeightCm),
	models.PhaseAskAge:      fmt.Sprintf("Hmm, that doesn't look like a valid age (%d-%d).", minAgeYears, maxAgeYears),
	models.PhaseAskGender:   "Please answer with M or F.",
	models.PhaseAskActivity: "Please answer with low, moderate or high.",
	models.PhaseAskGoal:     "Please answer with lose, maintain or gain.",
}

// Question returns the interview question for a phase.
func Question(phase models.Phase) string {
	return questions[phase]
}

// WelcomeMessage is the combined greeting plus first question sent on
// the first-ever message from an unseen user.
func WelcomeMessage(displayName string) string {
	return fmt.Sprintf(
		"Hi %s! 👋 I'm your calorie coach. Tell me what you eat and I'll keep your daily ledger.\n"+
			"First, a few quick questions to set your daily target.\n\n%s",
		displayName, Question(models.PhaseAskWeight))
}

func retryMessage(phase models.Phase) string {
	return retryNotices[phase] + "\n" + Question(phase)
}

func summaryMessage(p *models.Profile) string {
	return fmt.Sprintf(
		"All set, %s! ✅\n"+
			"Weight: %.1f kg | Height: %.1f cm | Age: %d\n"+
			"Gender: %s | Activity: %s | Goal: %s\n\n"+
			"Your daily calorie target is %d kcal. 🎯\n"+
			"Now just tell me what you eat and I'll track it for you.",
		p.DisplayName, p.WeightKg, p.HeightCm, p.AgeYears,
		p.Gender, p.ActivityLevel, p.Goal, p.DailyCalorieTarget)
}
