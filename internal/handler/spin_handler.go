package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"youngmoney/internal/middleware"
	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
)

type SpinHandler struct {
	svc *service.WheelService
}

func NewSpinHandler(svc *service.WheelService) *SpinHandler {
	return &SpinHandler{svc: svc}
}

// Status returns the wheel table and the caller's quota for today.
// GET /api/v1/spin
func (h *SpinHandler) Status(c *gin.Context) {
	st, err := h.svc.Status(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		statusFail(c, err, "Erro ao buscar informações da roleta")
		return
	}
	statusOK(c, "", gin.H{
		"greeting":         st.Greeting,
		"spins_remaining":  st.SpinsRemaining,
		"spins_today":      st.SpinsToday,
		"max_daily_spins":  st.MaxDailySpins,
		"prize_values":     st.PrizeValues,
		"server_time":      st.ServerTime.Format(time.RFC3339),
		"server_timestamp": st.ServerTime.Unix(),
	})
}

// Spin performs one spin.
// POST /api/v1/spin
func (h *SpinHandler) Spin(c *gin.Context) {
	res, err := h.svc.Spin(c.Request.Context(), middleware.GetUserID(c))
	if errors.Is(err, service.ErrQuotaExhausted) && res != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Você já usou todos os giros de hoje. Volte amanhã!",
			"data": gin.H{
				"spins_remaining": 0,
				"spins_today":     res.SpinsToday,
				"max_daily_spins": res.MaxDailySpins,
			},
		})
		return
	}
	if err != nil {
		statusFail(c, err, "Erro ao processar giro")
		return
	}
	statusOK(c, fmt.Sprintf("Você ganhou %d pontos!", res.PrizeValue), gin.H{
		"greeting":         res.Greeting,
		"prize_value":      res.PrizeValue,
		"prize_index":      res.PrizeIndex,
		"spins_remaining":  res.SpinsRemaining,
		"spins_today":      res.SpinsToday,
		"max_daily_spins":  res.MaxDailySpins,
		"new_balance":      res.NewBalance,
		"server_time":      res.ServerTime.Format(time.RFC3339),
		"server_timestamp": res.ServerTime.Unix(),
	})
}
