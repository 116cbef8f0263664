package handler

import (
	"net/http"
	"strconv"

	"youngmoney/internal/middleware"
	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	ranking *service.RankingService
	rewards *service.RewardService
}

func NewRankingHandler(ranking *service.RankingService, rewards *service.RewardService) *RankingHandler {
	return &RankingHandler{ranking: ranking, rewards: rewards}
}

// List returns the top users by daily points.
// GET /ranking/list?limit=100
func (h *RankingHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.ranking.List(c.Request.Context(), limit)
	if err != nil {
		statusFail(c, err, "Erro ao buscar ranking")
		return
	}
	if entries == nil {
		entries = []service.RankingEntry{}
	}
	statusOK(c, "", entries)
}

// Position returns the caller's rank.
// GET /ranking/user_position
func (h *RankingHandler) Position(c *gin.Context) {
	e, err := h.ranking.Position(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		statusFail(c, err, "Erro ao buscar posição")
		return
	}
	statusOK(c, "", gin.H{
		"position":     e.Position,
		"daily_points": e.DailyPoints,
		"total_points": e.TotalPoints,
		"username":     e.Username,
	})
}

type AddPointsRequest struct {
	UserID      uint   `json:"user_id"`
	Points      int64  `json:"points"`
	Description string `json:"description"`
}

// AddPoints credits a user manually.
// POST /ranking/add_points
func (h *RankingHandler) AddPoints(c *gin.Context) {
	var req AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.Points == 0 {
		statusError(c, http.StatusBadRequest, "user_id e points são obrigatórios")
		return
	}
	if err := h.rewards.AddPoints(c.Request.Context(), req.UserID, req.Points, req.Description); err != nil {
		statusFail(c, err, "Erro ao adicionar pontos")
		return
	}
	statusOK(c, "Pontos adicionados com sucesso", nil)
}
