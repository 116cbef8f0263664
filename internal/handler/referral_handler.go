package handler

import (
	"fmt"
	"net/http"
	"strings"

	"youngmoney/internal/middleware"
	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	svc *service.ReferralService
}

func NewReferralHandler(svc *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{svc: svc}
}

type ValidateInviteRequest struct {
	InviteCode string `json:"invite_code"`
}

// MyCode returns the caller's referral code and how much it has earned.
// GET /invite/my_code
func (h *ReferralHandler) MyCode(c *gin.Context) {
	code, err := h.svc.MyCode(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		statusFail(c, err, "Erro ao buscar código de convite")
		return
	}
	statusOK(c, "", gin.H{
		"referral_code": code.ReferralCode,
		"invite_count":  code.InviteCount,
		"total_earned":  code.TotalEarned,
	})
}

// Validate redeems another user's code; the referrer is credited.
// POST /invite/validate
func (h *ReferralHandler) Validate(c *gin.Context) {
	var req ValidateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		statusError(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	res, err := h.svc.ValidateInviteCode(c.Request.Context(), middleware.GetUserID(c), strings.TrimSpace(req.InviteCode))
	if err != nil {
		statusFail(c, err, "Erro ao validar código")
		return
	}
	statusOK(c, fmt.Sprintf("Código validado! %s ganhou %d pontos!", res.ReferrerUsername, res.Reward), gin.H{
		"referrer_username": res.ReferrerUsername,
		"reward":            res.Reward,
	})
}
