package handler

import (
	"errors"
	"net/http"

	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const invalidBodyMessage = "Dados inválidos"

// Client-facing messages for service errors.
var errorMessages = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrInvalidAmount, http.StatusBadRequest, "Valor inválido"},
	{service.ErrMissingPayoutInfo, http.StatusBadRequest, "Tipo e chave PIX são obrigatórios"},
	{service.ErrMissingInviteCode, http.StatusBadRequest, "Código de convite é obrigatório"},
	{service.ErrMissingField, http.StatusBadRequest, "Campos obrigatórios ausentes"},
	{service.ErrWeakPassword, http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres"},
	{service.ErrEmailTaken, http.StatusConflict, "Este email já está em uso"},
	{service.ErrUserNotFound, http.StatusNotFound, "Usuário não encontrado"},
	{service.ErrInvalidCode, http.StatusNotFound, "Código de convite inválido"},
	{service.ErrAlreadyCheckedIn, http.StatusBadRequest, "Você já fez check-in hoje!"},
	{service.ErrQuotaExhausted, http.StatusBadRequest, "Você já usou todos os giros de hoje. Volte amanhã!"},
	{service.ErrAlreadyUsedCode, http.StatusBadRequest, "Você já usou um código de convite"},
	{service.ErrSelfReferral, http.StatusBadRequest, "Você não pode usar seu próprio código"},
	{service.ErrInsufficientBalance, http.StatusBadRequest, "Saldo insuficiente"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Email ou senha inválidos"},
	{service.ErrInvalidGoogleToken, http.StatusUnauthorized, "Token do Google inválido"},
}

// classify maps err to an HTTP status and client message. Unknown errors are
// internal: they are logged and the client gets fallback.
func classify(c *gin.Context, err error, fallback string) (int, string) {
	var limit *service.LimitError
	if errors.As(err, &limit) {
		if errors.Is(err, service.ErrBelowMinimum) {
			return http.StatusBadRequest, "Valor mínimo para saque é R$ " + limit.Limit.StringFixed(2)
		}
		return http.StatusBadRequest, "Valor máximo para saque é R$ " + limit.Limit.StringFixed(2)
	}
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("[handler] internal error")
	return http.StatusInternalServerError, fallback
}

// Envelope {status, message?, data?}.

func statusOK(c *gin.Context, message string, data interface{}) {
	body := gin.H{"status": "success"}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func statusError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

func statusFail(c *gin.Context, err error, fallback string) {
	code, msg := classify(c, err, fallback)
	statusError(c, code, msg)
}

// Envelope {success, message, data?}.

func successOK(c *gin.Context, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func successError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

func successFail(c *gin.Context, err error, fallback string) {
	code, msg := classify(c, err, fallback)
	successError(c, code, msg)
}
