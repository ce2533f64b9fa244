package memory

import (
	"context"
	"sync"

	"calorie-coach-bot/internal/features/profile/models"
	"calorie-coach-bot/internal/features/profile/repository"
)

// memoryRepository is an ephemeral backend used by tests and by the
// memory store configuration. Profiles are copied on the way in and
// out so callers observe the same isolation as the persistent backends.
type memoryRepository struct {
	mu    sync.Mutex
	users map[int64]models.Profile
}

func NewRepository() repository.Repository {
	return &memoryRepository{users: make(map[int64]models.Profile)}
}

func (r *memoryRepository) Load(ctx context.Context) (*models.Database, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db := models.NewDatabase()
	for id, p := range r.users {
		clone := p
		db.Users[id] = &clone
	}
	return db, nil
}

func (r *memoryRepository) Save(ctx context.Context, db *models.Database) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[int64]models.Profile, len(db.Users))
	for id, p := range db.Users {
		r.users[id] = *p
	}
	return nil
}

func (r *memoryRepository) GetOrCreate(ctx context.Context, id int64, seed func() *models.Profile) (*models.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.users[id]; ok {
		clone := p
		return &clone, false, nil
	}

	p := seed()
	r.users[id] = *p
	clone := r.users[id]
	return &clone, true, nil
}

func (r *memoryRepository) SaveProfile(ctx context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[p.ID] = *p
	return nil
}
