package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"youngmoney/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func init() { gin.SetMode(gin.TestMode) }

func testContext() *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	return c
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{service.ErrAlreadyCheckedIn, http.StatusBadRequest, "Você já fez check-in hoje!"},
		{fmt.Errorf("wrapped: %w", service.ErrInsufficientBalance), http.StatusBadRequest, "Saldo insuficiente"},
		{service.ErrUserNotFound, http.StatusNotFound, "Usuário não encontrado"},
		{service.ErrInvalidCode, http.StatusNotFound, "Código de convite inválido"},
		{&service.LimitError{Err: service.ErrBelowMinimum, Limit: decimal.NewFromInt(10)}, http.StatusBadRequest, "Valor mínimo para saque é R$ 10.00"},
		{&service.LimitError{Err: service.ErrAboveMaximum, Limit: decimal.NewFromInt(1000)}, http.StatusBadRequest, "Valor máximo para saque é R$ 1000.00"},
		{errors.New("connection refused"), http.StatusInternalServerError, "fallback"},
	}
	for _, tc := range cases {
		status, msg := classify(testContext(), tc.err, "fallback")
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg, tc.err.Error())
	}
}

func TestEnvelopes(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	statusOK(c, "", gin.H{"a": 1})
	assert.JSONEq(t, `{"status":"success","data":{"a":1}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	successFail(c, errors.New("boom"), "Erro interno do servidor")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Erro interno do servidor"}`, w.Body.String())
}
