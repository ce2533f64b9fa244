package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "calorie-coach-bot/internal/common/errors"
	"calorie-coach-bot/internal/features/profile/models"
)

func newTestRepo(t *testing.T) (string, *fileRepository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.json")
	return path, NewRepository(path).(*fileRepository)
}

func TestLoadMissingFileIsEmptyDatabase(t *testing.T) {
	_, repo := newTestRepo(t)

	db, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, db.Users)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	p := models.NewProfile(7, "Andi", 7)
	p.OnboardingPhase = models.PhaseDone
	p.WeightKg = 65.5
	p.HeightCm = 170
	p.AgeYears = 25
	p.Gender = models.GenderMale
	p.ActivityLevel = models.ActivityModerate
	p.Goal = models.GoalLose
	p.DailyCalorieTarget = 1968
	p.CaloriesConsumedToday = 870

	db := models.NewDatabase()
	db.Users[p.ID] = p
	require.NoError(t, repo.Save(ctx, db))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Contains(t, loaded.Users, int64(7))

	got := loaded.Users[7]
	assert.Equal(t, p.DisplayName, got.DisplayName)
	assert.Equal(t, p.OnboardingPhase, got.OnboardingPhase)
	assert.Equal(t, p.WeightKg, got.WeightKg)
	assert.Equal(t, p.Gender, got.Gender)
	assert.Equal(t, p.ActivityLevel, got.ActivityLevel)
	assert.Equal(t, p.Goal, got.Goal)
	assert.Equal(t, p.DailyCalorieTarget, got.DailyCalorieTarget)
	assert.Equal(t, p.CaloriesConsumedToday, got.CaloriesConsumedToday)
	assert.WithinDuration(t, p.LastActiveAt, got.LastActiveAt, 0)
}

func TestLoadCorruptFile(t *testing.T) {
	path, repo := newTestRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repo.Load(context.Background())

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeStoreCorrupt, appErr.Code)
}

func TestGetOrCreateSeedsAndPersists(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	p, created, err := repo.GetOrCreate(ctx, 7, func() *models.Profile {
		return models.NewProfile(7, "Andi", 7)
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.PhaseAskWeight, p.OnboardingPhase)

	// A second call finds the persisted record.
	again, created, err := repo.GetOrCreate(ctx, 7, func() *models.Profile {
		t.Fatal("seed must not be called for an existing profile")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Andi", again.DisplayName)
}

func TestSaveProfileKeepsOtherUsers(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	_, _, err := repo.GetOrCreate(ctx, 1, func() *models.Profile { return models.NewProfile(1, "A", 1) })
	require.NoError(t, err)
	_, _, err = repo.GetOrCreate(ctx, 2, func() *models.Profile { return models.NewProfile(2, "B", 2) })
	require.NoError(t, err)

	p := models.NewProfile(1, "A", 1)
	p.CaloriesConsumedToday = 300
	require.NoError(t, repo.SaveProfile(ctx, p))

	db, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, db.Users, 2)
	assert.Equal(t, 300, db.Users[1].CaloriesConsumedToday)
	assert.Equal(t, "B", db.Users[2].DisplayName)
}

func TestSaveIsAtomicEnough(t *testing.T) {
	path, repo := newTestRepo(t)
	ctx := context.Background()

	db := models.NewDatabase()
	db.Users[1] = models.NewProfile(1, "A", 1)
	require.NoError(t, repo.Save(ctx, db))

	// No temp files are left behind and the document stays loadable.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = repo.Load(ctx)
	assert.NoError(t, err)
}
