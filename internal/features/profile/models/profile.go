package models

import "time"

// Phase is the current step of the guided onboarding interview.
// The terminal variant PhaseDone marks a fully onboarded user; no
// other value is ever persisted.
type Phase string

const (
	PhaseAskWeight   Phase = "ask_weight"
	PhaseAskHeight   Phase = "ask_height"
	PhaseAskAge      Phase = "ask_age"
	PhaseAskGender   Phase = "ask_gender"
	PhaseAskActivity Phase = "ask_activity"
	PhaseAskGoal     Phase = "ask_goal"
	PhaseDone        Phase = "done"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// Profile is the per-user record. Anthropometric fields are filled in
// one at a time during onboarding; DailyCalorieTarget is computed once
// at the transition into PhaseDone and never changes afterwards.
type Profile struct {
	ID                    int64         `json:"id"`
	DisplayName           string        `json:"display_name"`
	ChatID                int64         `json:"chat_id"`
	OnboardingPhase       Phase         `json:"onboarding_phase"`
	WeightKg              float64       `json:"weight_kg,omitempty"`
	HeightCm              float64       `json:"height_cm,omitempty"`
	AgeYears              int           `json:"age_years,omitempty"`
	Gender                Gender        `json:"gender,omitempty"`
	ActivityLevel         ActivityLevel `json:"activity_level,omitempty"`
	Goal                  Goal          `json:"goal,omitempty"`
	DailyCalorieTarget    int           `json:"daily_calorie_target,omitempty"`
	CaloriesConsumedToday int           `json:"calories_consumed_today"`
	LastActiveAt          time.Time     `json:"last_active_at"`
}

// NewProfile seeds a freshly created profile at the first interview step.
func NewProfile(id int64, displayName string, chatID int64) *Profile {
	return &Profile{
		ID:              id,
		DisplayName:     displayName,
		ChatID:          chatID,
		OnboardingPhase: PhaseAskWeight,
		LastActiveAt:    time.Now(),
	}
}

// Onboarded reports whether the interview has completed.
func (p *Profile) Onboarded() bool {
	return p.OnboardingPhase == PhaseDone
}

// Database is the single persisted document holding every user record.
type Database struct {
	Users map[int64]*Profile `json:"users"`
}

func NewDatabase() *Database {
	return &Database{Users: make(map[int64]*Profile)}
}
