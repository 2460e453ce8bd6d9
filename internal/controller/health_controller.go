package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/quickgrade/quickgrade/config"
	"github.com/quickgrade/quickgrade/database"
	"github.com/quickgrade/quickgrade/internal/dto"
)

type HealthController struct {
	db  *gorm.DB
	env config.Environment
}

func NewHealthController(db *gorm.DB, cfg *config.Config) *HealthController {
	return &HealthController{db: db, env: cfg.Environment}
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		OK:        true,
		Env:       string(ctrl.env),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthDB godoc
// @Summary Readiness check
// @Description Verifies the store answers a trivial query.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.HealthResponse
// @Router /health/db [get]
func (ctrl *HealthController) HealthDB(c *gin.Context) {
	if err := database.Healthcheck(ctrl.db); err != nil {
		log.Error().Err(err).Msg("DB health check failed")
		c.JSON(http.StatusInternalServerError, dto.HealthResponse{OK: false, Error: "DB_NOT_AVAILABLE"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{OK: true})
}
