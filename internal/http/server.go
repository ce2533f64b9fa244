// Package http exposes the read-only status surface: liveness plus a
// per-user daily progress view. It never mutates the store.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"calorie-coach-bot/internal/common/middleware"
	"calorie-coach-bot/internal/features/ledger"
	"calorie-coach-bot/internal/features/profile/repository"
)

type Server struct {
	store  repository.Repository
	server *http.Server
}

type progressResponse struct {
	ID                    int64  `json:"id"`
	DisplayName           string `json:"display_name"`
	OnboardingPhase       string `json:"onboarding_phase"`
	CaloriesConsumedToday int    `json:"calories_consumed_today"`
	DailyCalorieTarget    int    `json:"daily_calorie_target"`
	ProgressPercent       int    `json:"progress_percent"`
}

func NewServer(store repository.Repository, port int, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	s := &Server{
		store: store,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}

	router.GET("/health", s.handleHealth)
	router.GET("/api/v1/users/:id/progress", s.handleProgress)

	return s
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleProgress(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	db, err := s.store.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
		return
	}

	p, ok := db.Users[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, progressResponse{
		ID:                    p.ID,
		DisplayName:           p.DisplayName,
		OnboardingPhase:       string(p.OnboardingPhase),
		CaloriesConsumedToday: p.CaloriesConsumedToday,
		DailyCalorieTarget:    p.DailyCalorieTarget,
		ProgressPercent:       ledger.Progress(p),
	})
}
