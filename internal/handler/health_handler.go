package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "YoungMoney API",
		"version":   apiVersion,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Health pings the database.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		log.Error().Err(err).Msg("[health] database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":  false,
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"status":   "healthy",
		"database": "connected",
	})
}

func (h *HealthHandler) NotFound(c *gin.Context) {
	successError(c, http.StatusNotFound, "Rota não encontrada")
}
