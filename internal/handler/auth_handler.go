package handler

import (
	"net/http"

	"youngmoney/internal/models"
	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type DeviceLoginRequest struct {
	DeviceID   string                 `json:"deviceId"`
	DeviceInfo map[string]interface{} `json:"deviceInfo"`
}

type GoogleLoginRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	GoogleID    string `json:"googleId"`
	DeviceID    string `json:"deviceId"`
	AccessToken string `json:"accessToken"`
}

type EmailLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginUser(u *models.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"email":        u.EmailValue(),
		"username":     u.Username,
		"balance":      u.Points,
		"points":       u.Points,
		"totalEarned":  u.TotalEarned,
		"referralCode": u.ReferralCode,
	}
}

func loginResponse(c *gin.Context, res *service.LoginResult) {
	successOK(c, "Login realizado com sucesso", gin.H{
		"token":  res.Token,
		"user":   loginUser(res.User),
		"is_new": res.Created,
	})
}

func (h *AuthHandler) DeviceLogin(c *gin.Context) {
	var req DeviceLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		successError(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	if req.DeviceID == "" {
		successError(c, http.StatusBadRequest, "Device ID não fornecido")
		return
	}
	res, err := h.svc.DeviceLogin(c.Request.Context(), req.DeviceID)
	if err != nil {
		successFail(c, err, "Erro interno do servidor")
		return
	}
	loginResponse(c, res)
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		successError(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	if req.Email == "" {
		successError(c, http.StatusBadRequest, "Email não fornecido")
		return
	}
	res, err := h.svc.GoogleLogin(c.Request.Context(), service.GoogleLoginInput{
		Email:       req.Email,
		Name:        req.Name,
		GoogleID:    req.GoogleID,
		DeviceID:    req.DeviceID,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		successFail(c, err, "Erro interno do servidor")
		return
	}
	loginResponse(c, res)
}

func (h *AuthHandler) EmailLogin(c *gin.Context) {
	var req EmailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		successError(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	res, err := h.svc.EmailLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		successFail(c, err, "Erro interno do servidor")
		return
	}
	loginResponse(c, res)
}
