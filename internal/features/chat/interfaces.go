package chat

import (
	"context"

	"calorie-coach-bot/internal/features/profile/models"
)

// Inbound is one text event delivered by the messenger.
type Inbound struct {
	SenderID    int64
	DisplayName string
	Text        string
	ChatID      int64
	MessageRef  string
}

// Presence mirrors the chat transport's typing indicator states.
type Presence string

const (
	PresenceComposing Presence = "composing"
	PresencePaused    Presence = "paused"
)

// Messenger delivers outbound traffic. Connection establishment,
// pairing and reconnects are the implementation's own business.
// Sends are fire-and-forget relative to persisted state: a delivery
// failure never rolls back a saved mutation.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SetPresence(ctx context.Context, chatID int64, state Presence) error
	MarkRead(ctx context.Context, ref string) error
}

// Snapshot is the read-only profile view handed to the classifier. It
// shapes the reply text only and never feeds back into arithmetic.
type Snapshot struct {
	CaloriesConsumedToday int
	DailyCalorieTarget    int
	WeightKg              float64
	HeightCm              float64
	AgeYears              int
	Goal                  models.Goal
}

// SnapshotOf builds a classifier snapshot from a profile.
func SnapshotOf(p *models.Profile) Snapshot {
	return Snapshot{
		CaloriesConsumedToday: p.CaloriesConsumedToday,
		DailyCalorieTarget:    p.DailyCalorieTarget,
		WeightKg:              p.WeightKg,
		HeightCm:              p.HeightCm,
		AgeYears:              p.AgeYears,
		Goal:                  p.Goal,
	}
}

// ClassifierResult is the parsed model output for one food message.
type ClassifierResult struct {
	CaloriesDetected int
	ResponseMessage  string
}

// Classifier maps free text plus a profile snapshot to a calorie
// detection. Any error means the turn is dropped.
type Classifier interface {
	Classify(ctx context.Context, displayName, text string, snap Snapshot) (*ClassifierResult, error)
}
