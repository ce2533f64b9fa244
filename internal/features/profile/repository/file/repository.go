package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "calorie-coach-bot/internal/common/errors"
	"calorie-coach-bot/internal/features/profile/models"
	"calorie-coach-bot/internal/features/profile/repository"
)

// fileRepository persists the database as a single JSON document on
// disk, the same layout the bot has always used: {"users": {...}}.
type fileRepository struct {
	mu   sync.Mutex
	path string
}

func NewRepository(path string) repository.Repository {
	return &fileRepository{path: path}
}

func (r *fileRepository) Load(ctx context.Context) (*models.Database, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileRepository) Save(ctx context.Context, db *models.Database) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(db)
}

func (r *fileRepository) GetOrCreate(ctx context.Context, id int64, seed func() *models.Profile) (*models.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.load()
	if err != nil {
		return nil, false, err
	}

	if p, ok := db.Users[id]; ok {
		return p, false, nil
	}

	p := seed()
	db.Users[id] = p
	if err := r.save(db); err != nil {
		return nil, false, err
	}

	return p, true, nil
}

func (r *fileRepository) SaveProfile(ctx context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.load()
	if err != nil {
		return err
	}

	db.Users[p.ID] = p
	return r.save(db)
}

func (r *fileRepository) load() (*models.Database, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewDatabase(), nil
		}
		return nil, apperrors.NewStoreIOError("read", err)
	}

	db := models.NewDatabase()
	if err := json.Unmarshal(data, db); err != nil {
		return nil, apperrors.NewStoreCorruptError(r.path, err)
	}
	if db.Users == nil {
		db.Users = make(map[int64]*models.Profile)
	}

	return db, nil
}

// save writes to a temp file in the same directory and renames it over
// the target, so a crash mid-write never leaves an unparseable document.
func (r *fileRepository) save(db *models.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return apperrors.NewStoreIOError("marshal", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return apperrors.NewStoreIOError("create temp", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewStoreIOError("write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStoreIOError("close", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStoreIOError(fmt.Sprintf("rename to %s", r.path), err)
	}

	return nil
}
