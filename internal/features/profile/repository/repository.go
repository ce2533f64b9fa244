package repository

import (
	"context"

	"calorie-coach-bot/internal/features/profile/models"
)

// Repository defines persistence operations for the profile database.
//
// The persisted form is one document holding every user, so store
// mutation must be serialized: implementations guard their own
// load-modify-save cycles with an internal mutex. Callers remain
// responsible for not interleaving read-modify-write cycles for the
// same user id (the dispatcher holds a per-user lock across a turn).
type Repository interface {
	// Load returns the whole persisted database. A store that has never
	// been written loads as an empty database.
	Load(ctx context.Context) (*models.Database, error)

	// Save persists the whole database. An interrupted save must not
	// leave behind a document that fails a subsequent Load.
	Save(ctx context.Context, db *models.Database) error

	// GetOrCreate returns the profile for id, or seeds, persists and
	// returns a fresh one. The second result reports whether the
	// profile was created by this call.
	GetOrCreate(ctx context.Context, id int64, seed func() *models.Profile) (*models.Profile, bool, error)

	// SaveProfile writes a single profile back into the persisted
	// document without touching other users' records.
	SaveProfile(ctx context.Context, p *models.Profile) error
}
