package redis

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	apperrors "calorie-coach-bot/internal/common/errors"
	"calorie-coach-bot/internal/features/profile/models"
	"calorie-coach-bot/internal/features/profile/repository"
)

const databaseKey = "calorie-coach:database"

// redisRepository keeps the same single-document layout as the file
// backend, stored as one JSON value under databaseKey.
type redisRepository struct {
	mu     sync.Mutex
	client *redis.Client
}

func NewRepository(client *redis.Client) repository.Repository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Load(ctx context.Context) (*models.Database, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *redisRepository) Save(ctx context.Context, db *models.Database) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, db)
}

func (r *redisRepository) GetOrCreate(ctx context.Context, id int64, seed func() *models.Profile) (*models.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.load(ctx)
	if err != nil {
		return nil, false, err
	}

	if p, ok := db.Users[id]; ok {
		return p, false, nil
	}

	p := seed()
	db.Users[id] = p
	if err := r.save(ctx, db); err != nil {
		return nil, false, err
	}

	return p, true, nil
}

func (r *redisRepository) SaveProfile(ctx context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.load(ctx)
	if err != nil {
		return err
	}

	db.Users[p.ID] = p
	return r.save(ctx, db)
}

func (r *redisRepository) load(ctx context.Context) (*models.Database, error) {
	data, err := r.client.Get(ctx, databaseKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return models.NewDatabase(), nil
		}
		return nil, apperrors.NewStoreIOError("get", err)
	}

	db := models.NewDatabase()
	if err := json.Unmarshal(data, db); err != nil {
		return nil, apperrors.NewStoreCorruptError(databaseKey, err)
	}
	if db.Users == nil {
		db.Users = make(map[int64]*models.Profile)
	}

	return db, nil
}

func (r *redisRepository) save(ctx context.Context, db *models.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return apperrors.NewStoreIOError("marshal", err)
	}

	if err := r.client.Set(ctx, databaseKey, data, 0).Err(); err != nil {
		return apperrors.NewStoreIOError("set", err)
	}

	return nil
}
