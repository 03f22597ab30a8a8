package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrEmailTaken, http.StatusConflict},
		{service.ErrAlreadySubmitted, http.StatusConflict},
		{fmt.Errorf("%w: title is required", service.ErrInvalidInput), http.StatusBadRequest},
		{service.ErrTestNotOpen, http.StatusBadRequest},
		{service.ErrNoQuestions, http.StatusBadRequest},
		{fmt.Errorf("%w: 2 of 5 answered", service.ErrIncompleteSubmission), http.StatusUnprocessableEntity},
		{service.ErrAIUnavailable, http.StatusServiceUnavailable},
		{service.ErrJudgeUnavailable, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(ctx, "Test", errors.New("pq: password authentication failed"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body != `{"message":"Internal server error"}` {
		t.Errorf("body = %s", body)
	}
}

func TestUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tt := range []struct {
		value string
		want  uint
		ok    bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	} {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Params = gin.Params{{Key: "test_id", Value: tt.value}}
		got, ok := UintParam(ctx, "test_id")
		if got != tt.want || ok != tt.ok {
			t.Errorf("UintParam(%q) = %d, %v", tt.value, got, ok)
		}
		if !ok && w.Code != http.StatusBadRequest {
			t.Errorf("UintParam(%q) status = %d", tt.value, w.Code)
		}
	}
}
