package handler

import (
	"net/http"

	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	svc *service.SettingsService
}

func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get returns every system setting as a key/value map.
// GET /settings/get
func (h *SettingsHandler) Get(c *gin.Context) {
	all, err := h.svc.All(c.Request.Context())
	if err != nil {
		statusFail(c, err, "Erro ao buscar configurações")
		return
	}
	statusOK(c, "", all)
}

type UpdateSettingRequest struct {
	Key   string `json:"setting_key"`
	Value string `json:"setting_value"`
}

// POST /settings/update
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		statusError(c, http.StatusBadRequest, "setting_key é obrigatório")
		return
	}
	if err := h.svc.Update(c.Request.Context(), req.Key, req.Value); err != nil {
		statusFail(c, err, "Erro ao atualizar configuração")
		return
	}
	statusOK(c, "Configuração atualizada", nil)
}

// QuickValues lists the active pre-approved withdrawal amounts.
// GET /settings/quick-values
func (h *SettingsHandler) QuickValues(c *gin.Context) {
	rows, err := h.svc.QuickValues(c.Request.Context())
	if err != nil {
		statusFail(c, err, "Erro ao buscar valores rápidos")
		return
	}
	items := make([]gin.H, 0, len(rows))
	for _, q := range rows {
		items = append(items, gin.H{"id": q.ID, "value": q.ValueAmount.StringFixed(2)})
	}
	statusOK(c, "", items)
}
