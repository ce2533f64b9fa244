package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"calorie-coach-bot/internal/features/profile/models"
)

func TestApplyIgnoresNonFood(t *testing.T) {
	lastActive := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &models.Profile{CaloriesConsumedToday: 500, LastActiveAt: lastActive}

	Apply(p, 0)
	Apply(p, -5)

	assert.Equal(t, 500, p.CaloriesConsumedToday)
	assert.Equal(t, lastActive, p.LastActiveAt)
}

func TestApplyAccumulates(t *testing.T) {
	p := &models.Profile{}
	before := time.Now()

	for _, calories := range []int{300, 450, 120} {
		Apply(p, calories)
	}

	assert.Equal(t, 870, p.CaloriesConsumedToday)
	assert.False(t, p.LastActiveAt.Before(before))
}

func TestProgress(t *testing.T) {
	cases := []struct {
		consumed, target, want int
	}{
		{0, 2000, 0},
		{500, 2000, 25},
		{1968, 1968, 100},
		{3000, 2000, 100},
		{987, 1968, 50},
		{100, 0, 0},
	}

	for _, tc := range cases {
		p := &models.Profile{CaloriesConsumedToday: tc.consumed, DailyCalorieTarget: tc.target}
		assert.Equal(t, tc.want, Progress(p), "consumed=%d target=%d", tc.consumed, tc.target)
	}
}
