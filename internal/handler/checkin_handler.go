package handler

import (
	"fmt"
	"strconv"
	"time"

	"youngmoney/internal/middleware"
	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckinHandler struct {
	svc *service.RewardService
}

func NewCheckinHandler(svc *service.RewardService) *CheckinHandler {
	return &CheckinHandler{svc: svc}
}

// Checkin grants the daily reward once per calendar day.
// POST /api/v1/checkin
func (h *CheckinHandler) Checkin(c *gin.Context) {
	res, err := h.svc.Checkin(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		statusFail(c, err, "Erro ao fazer check-in")
		return
	}
	statusOK(c, fmt.Sprintf("Check-in realizado! Você ganhou %d pontos!", res.Reward), gin.H{
		"reward":      res.Reward,
		"new_balance": res.NewBalance,
	})
}

// PointsHistory lists the caller's ledger, newest first.
// GET /history/points?limit=50
func (h *CheckinHandler) PointsHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := h.svc.History(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		statusFail(c, err, "Erro ao buscar histórico")
		return
	}
	items := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		items = append(items, gin.H{
			"id":          r.ID,
			"points":      r.Points,
			"description": r.Description,
			"created_at":  r.CreatedAt.Format(time.DateTime),
		})
	}
	statusOK(c, "", items)
}

// Transactions is the credit/debit view over the same ledger.
// GET /history/transactions?limit=50
func (h *CheckinHandler) Transactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	txs, err := h.svc.Transactions(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		statusFail(c, err, "Erro ao buscar histórico")
		return
	}
	if txs == nil {
		txs = []service.Transaction{}
	}
	statusOK(c, "", txs)
}
