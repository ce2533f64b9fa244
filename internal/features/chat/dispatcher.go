// Package chat routes inbound text events to the onboarding interview
// or the food ledger and decides the single outbound reply per turn.
package chat

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"calorie-coach-bot/internal/common/logger"
	"calorie-coach-bot/internal/features/ledger"
	"calorie-coach-bot/internal/features/onboarding"
	"calorie-coach-bot/internal/features/profile/models"
	"calorie-coach-bot/internal/features/profile/repository"
)

type Dispatcher struct {
	store      repository.Repository
	fsm        *onboarding.FSM
	messenger  Messenger
	classifier Classifier

	// Per-user locks keep read-modify-write cycles for the same id from
	// interleaving; turns for different users may overlap freely.
	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

func NewDispatcher(store repository.Repository, messenger Messenger, classifier Classifier) *Dispatcher {
	return &Dispatcher{
		store:      store,
		fsm:        onboarding.New(),
		messenger:  messenger,
		classifier: classifier,
		locks:      make(map[int64]*sync.Mutex),
	}
}

func (d *Dispatcher) lockFor(userID int64) *sync.Mutex {
	d.locksMu.Lock()
	defer d.locksMu.Unlock()

	mu, ok := d.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		d.locks[userID] = mu
	}
	return mu
}

// HandleMessage processes one inbound event end to end. Failures drop
// the turn: nothing is sent, and the next turn reloads from the last
// successful save. It never returns an error and never panics the
// caller's loop.
func (d *Dispatcher) HandleMessage(ctx context.Context, ev Inbound) {
	turnID := uuid.New().String()
	logger.Debug().Str("turn_id", turnID).Int64("user_id", ev.SenderID).Msg("Handling inbound message")

	mu := d.lockFor(ev.SenderID)
	mu.Lock()
	defer mu.Unlock()

	if ev.MessageRef != "" {
		_ = d.messenger.MarkRead(ctx, ev.MessageRef)
	}

	p, created, err := d.store.GetOrCreate(ctx, ev.SenderID, func() *models.Profile {
		return models.NewProfile(ev.SenderID, ev.DisplayName, ev.ChatID)
	})
	if err != nil {
		logger.Error().Err(err).Str("turn_id", turnID).Int64("user_id", ev.SenderID).
			Msg("Store failure, dropping turn")
		return
	}

	if created {
		d.send(ctx, ev.ChatID, onboarding.WelcomeMessage(ev.DisplayName), turnID)
		return
	}

	if !p.Onboarded() {
		reply := d.fsm.HandleAnswer(p, ev.Text)
		if err := d.store.SaveProfile(ctx, p); err != nil {
			logger.Error().Err(err).Str("turn_id", turnID).Int64("user_id", ev.SenderID).
				Msg("Failed to persist onboarding answer, dropping turn")
			return
		}
		d.send(ctx, ev.ChatID, reply, turnID)
		return
	}

	_ = d.messenger.SetPresence(ctx, ev.ChatID, PresenceComposing)

	result, err := d.classifier.Classify(ctx, ev.DisplayName, ev.Text, SnapshotOf(p))
	if err != nil {
		logger.Warn().Err(err).Str("turn_id", turnID).Int64("user_id", ev.SenderID).
			Msg("Classifier failure, dropping turn")
		_ = d.messenger.SetPresence(ctx, ev.ChatID, PresencePaused)
		return
	}

	ledger.Apply(p, result.CaloriesDetected)
	if err := d.store.SaveProfile(ctx, p); err != nil {
		logger.Error().Err(err).Str("turn_id", turnID).Int64("user_id", ev.SenderID).
			Msg("Failed to persist ledger update, dropping turn")
		_ = d.messenger.SetPresence(ctx, ev.ChatID, PresencePaused)
		return
	}

	d.send(ctx, ev.ChatID, result.ResponseMessage, turnID)
	_ = d.messenger.SetPresence(ctx, ev.ChatID, PresencePaused)
}

// send delivers an outbound reply after the turn's state is already
// persisted; delivery failure is logged but never rolled back.
func (d *Dispatcher) send(ctx context.Context, chatID int64, text string, turnID string) {
	if err := d.messenger.SendText(ctx, chatID, text); err != nil {
		logger.Warn().Err(err).Str("turn_id", turnID).Int64("chat_id", chatID).
			Msg("Failed to send reply")
	}
}
