package handler

import (
	"net/http"
	"strconv"
	"time"

	"youngmoney/internal/middleware"
	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List returns the caller's notifications with the unread count.
// GET /notifications/list?limit=20
func (h *NotificationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, err := h.svc.List(ctx, userID, limit)
	if err != nil {
		statusFail(c, err, "Erro ao buscar notificações")
		return
	}
	unread, err := h.svc.UnreadCount(ctx, userID)
	if err != nil {
		statusFail(c, err, "Erro ao buscar notificações")
		return
	}
	items := make([]gin.H, 0, len(rows))
	for _, n := range rows {
		items = append(items, gin.H{
			"id":         n.ID,
			"title":      n.Title,
			"message":    n.Message,
			"type":       n.Type,
			"is_read":    n.IsRead,
			"created_at": n.CreatedAt.Format(time.DateTime),
		})
	}
	statusOK(c, "", gin.H{"notifications": items, "unread_count": unread})
}

type MarkReadRequest struct {
	NotificationID uint `json:"notification_id"`
}

// MarkRead marks one of the caller's notifications as read.
// POST /notifications/mark_read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NotificationID == 0 {
		statusError(c, http.StatusBadRequest, "notification_id é obrigatório")
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), middleware.GetUserID(c), req.NotificationID); err != nil {
		statusFail(c, err, "Erro ao marcar notificação")
		return
	}
	statusOK(c, "Notificação marcada como lida", nil)
}
