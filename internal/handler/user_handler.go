package handler

import (
	"net/http"

	"youngmoney/internal/middleware"
	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users   *service.UserService
	rewards *service.RewardService
}

func NewUserHandler(users *service.UserService, rewards *service.RewardService) *UserHandler {
	return &UserHandler{users: users, rewards: rewards}
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.users.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		successFail(c, err, "Erro interno do servidor")
		return
	}
	successOK(c, "", gin.H{
		"id":                u.ID,
		"email":             u.EmailValue(),
		"username":          u.Username,
		"balance":           u.Points,
		"points":            u.Points,
		"dailyPoints":       u.DailyPoints,
		"totalEarned":       u.TotalEarned,
		"totalWithdrawn":    u.TotalWithdrawn.StringFixed(2),
		"referralCode":      u.ReferralCode,
		"hasUsedInviteCode": u.HasUsedInviteCode,
		"createdAt":         u.CreatedAt,
	})
}

func (h *UserHandler) Balance(c *gin.Context) {
	u, ledgerTotal, err := h.rewards.Balance(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		successFail(c, err, "Erro interno do servidor")
		return
	}
	successOK(c, "", gin.H{
		"balance":        u.Points,
		"points":         u.Points,
		"ledgerTotal":    ledgerTotal,
		"totalEarned":    u.TotalEarned,
		"totalWithdrawn": u.TotalWithdrawn.StringFixed(2),
	})
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		successError(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	err := h.users.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), service.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		successFail(c, err, "Erro interno do servidor")
		return
	}
	successOK(c, "Perfil atualizado com sucesso", nil)
}
