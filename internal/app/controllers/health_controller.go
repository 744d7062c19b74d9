package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniactivity/internal/app/models/dto"
	"github.com/yigit/uniactivity/internal/pkg/logger"
)

// Pinger checks that the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness
type HealthController struct {
	storage string
	pinger  Pinger
}

// NewHealthController creates a new HealthController. pinger may be nil for in-memory storage.
func NewHealthController(storage string, pinger Pinger) *HealthController {
	return &HealthController{storage: storage, pinger: pinger}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.pinger.Ping(pingCtx); err != nil {
			logger.Warn().Err(err).Msg("Health check failed")
			ctx.JSON(http.StatusServiceUnavailable, dto.APIResponse{
				Success:   false,
				Data:      dto.HealthResponse{Status: "unavailable", Storage: c.storage},
				Timestamp: time.Now(),
			})
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{Status: "ok", Storage: c.storage}, ""))
}
