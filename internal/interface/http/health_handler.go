package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything that can confirm the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Env string
	DB  Pinger
}

func NewHealthHandler(env string, db Pinger) *HealthHandler {
	return &HealthHandler{Env: env, DB: db}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"message":     "Votiy API is running",
		"timestamp":   time.Now().UTC(),
		"environment": h.Env,
	})
}

// Database GET /api/debug/db
func (h *HealthHandler) Database(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Database query failed",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Database connection working"})
}
