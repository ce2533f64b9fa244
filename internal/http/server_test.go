package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calorie-coach-bot/internal/features/profile/models"
	"calorie-coach-bot/internal/features/profile/repository/memory"
)

func TestHandleProgress(t *testing.T) {
	store := memory.NewRepository()
	p := models.NewProfile(7, "Andi", 7)
	p.OnboardingPhase = models.PhaseDone
	p.DailyCalorieTarget = 2000
	p.CaloriesConsumedToday = 500
	require.NoError(t, store.SaveProfile(context.Background(), p))

	s := NewServer(store, 0, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users/7/progress", nil)
	s.server.Handler.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)

	var resp progressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 25, resp.ProgressPercent)
	assert.Equal(t, "done", resp.OnboardingPhase)
}

func TestHandleProgressUnknownUser(t *testing.T) {
	s := NewServer(memory.NewRepository(), 0, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users/99/progress", nil)
	s.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}

func TestHandleProgressBadID(t *testing.T) {
	s := NewServer(memory.NewRepository(), 0, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/users/abc/progress", nil)
	s.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(memory.NewRepository(), 0, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	s.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
}
