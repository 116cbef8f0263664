package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type MonetagHandler struct {
	svc *service.PostbackService
}

func NewMonetagHandler(svc *service.PostbackService) *MonetagHandler {
	return &MonetagHandler{svc: svc}
}

// flexibleID accepts the user id as a JSON string or number.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

type CreateSessionRequest struct {
	UserID    flexibleID `json:"userId"`
	UserEmail string     `json:"userEmail"`
}

// Session registers the ad view about to happen so its postback can be attributed.
// POST /api/monetag/session
func (h *MonetagHandler) Session(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		successError(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	if req.UserID == "" || req.UserEmail == "" {
		successError(c, http.StatusBadRequest, "userId e userEmail são obrigatórios")
		return
	}
	sess, err := h.svc.CreateSession(c.Request.Context(), string(req.UserID), req.UserEmail)
	if err != nil {
		successFail(c, err, "Erro ao criar sessão")
		return
	}
	successOK(c, "Sessão criada", gin.H{"expiresAt": sess.ExpiresAt.UTC().Format(time.RFC3339Nano)})
}

// Postback always answers 200 OK; the ad network must not retry.
// GET /api/monetag/postback
func (h *MonetagHandler) Postback(c *gin.Context) {
	pb := service.Postback{
		EventType: c.Query("event_type"),
		SubID:     c.Query("sub_id"),
		SubID2:    c.Query("sub_id2"),
		Revenue:   c.Query("revenue"),
	}
	if _, err := h.svc.ResolvePostback(c.Request.Context(), pb); err != nil {
		log.Error().Err(err).Str("event_type", pb.EventType).Msg("[postback] failed to record event")
	}
	c.String(http.StatusOK, "OK")
}

// Stats aggregates impressions, clicks and revenue for one email.
// GET /api/monetag/stats?email=
func (h *MonetagHandler) Stats(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		successError(c, http.StatusBadRequest, "Email é obrigatório")
		return
	}
	st, err := h.svc.Stats(c.Request.Context(), email)
	if err != nil {
		successFail(c, err, "Erro ao buscar estatísticas")
		return
	}
	successOK(c, "", gin.H{
		"impressions":  st.Impressions,
		"clicks":       st.Clicks,
		"totalRevenue": st.TotalRevenue.StringFixed(6),
	})
}

// Cleanup purges expired sessions on demand.
// DELETE /api/monetag/cleanup
func (h *MonetagHandler) Cleanup(c *gin.Context) {
	n, err := h.svc.CleanupExpiredSessions(c.Request.Context())
	if err != nil {
		successFail(c, err, "Erro ao limpar sessões")
		return
	}
	active, err := h.svc.ActiveSessions(c.Request.Context())
	if err != nil {
		successFail(c, err, "Erro ao limpar sessões")
		return
	}
	successOK(c, "Sessões expiradas removidas", gin.H{"deleted": n, "active": active})
}
