package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"obra-connect.backend/pkg/logger"
)

const healthPingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check answers 200 when the database responds and 503 otherwise
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "unconfigured"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.Error(c.Request.Context(), "Health check database ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": dbStatus, "time": time.Now().UTC()})
}
