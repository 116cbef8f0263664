package handler

import (
	"net/http"
	"time"

	"youngmoney/internal/middleware"
	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type WithdrawalHandler struct {
	svc *service.WithdrawalService
}

func NewWithdrawalHandler(svc *service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{svc: svc}
}

// Amount accepts both 25 and "25.00".
type WithdrawalRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	PixType string          `json:"pix_type"`
	PixKey  string          `json:"pix_key"`
}

// Request creates a pending withdrawal and debits the points.
// POST /withdrawals/request
func (h *WithdrawalHandler) Request(c *gin.Context) {
	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		statusError(c, http.StatusBadRequest, "Valor inválido")
		return
	}
	res, err := h.svc.Request(c.Request.Context(), middleware.GetUserID(c), req.Amount, req.PixType, req.PixKey)
	if err != nil {
		statusFail(c, err, "Erro ao solicitar saque")
		return
	}
	msg := "Saque solicitado com sucesso! Aguarde a aprovação."
	statusOK(c, msg, gin.H{
		"withdrawal_id": res.WithdrawalID,
		"order_id":      res.OrderID,
		"amount":        res.Amount.StringFixed(2),
		"status":        res.Status,
		"message":       msg,
	})
}

// History lists every withdrawal of the caller, newest first.
// GET /withdrawals/history
func (h *WithdrawalHandler) History(c *gin.Context) {
	rows, err := h.svc.History(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		statusFail(c, err, "Erro ao buscar histórico")
		return
	}
	items := make([]gin.H, 0, len(rows))
	for _, w := range rows {
		items = append(items, gin.H{
			"id":         w.ID,
			"amount":     w.Amount.StringFixed(2),
			"pix_type":   w.PixType,
			"pix_key":    w.PixKey,
			"status":     w.Status,
			"created_at": w.CreatedAt.Format(time.DateTime),
			"updated_at": w.UpdatedAt.Format(time.DateTime),
		})
	}
	statusOK(c, "", items)
}

// Recent lists the caller's last five withdrawals.
// GET /withdrawals/recent
func (h *WithdrawalHandler) Recent(c *gin.Context) {
	rows, err := h.svc.Recent(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		statusFail(c, err, "Erro ao buscar saques recentes")
		return
	}
	items := make([]gin.H, 0, len(rows))
	for _, w := range rows {
		items = append(items, gin.H{
			"id":         w.ID,
			"amount":     w.Amount.StringFixed(2),
			"status":     w.Status,
			"created_at": w.CreatedAt.Format(time.DateTime),
		})
	}
	statusOK(c, "", items)
}
