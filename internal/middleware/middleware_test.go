package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/service"
)

type fakeAuth struct{}

func (fakeAuth) SignupStudent(dto.SignupRequest) (*dto.AuthResponse, error) { return nil, nil }
func (fakeAuth) SignupInterviewer(dto.InterviewerSignupRequest) (*dto.AuthResponse, error) {
	return nil, nil
}
func (fakeAuth) Login(dto.LoginRequest) (*dto.AuthResponse, error) { return nil, nil }
func (fakeAuth) ParseToken(token string) (*service.Claims, error) {
	switch token {
	case "student":
		return &service.Claims{Role: "student", RegisteredClaims: jwt.RegisteredClaims{Subject: "7"}}, nil
	case "interviewer":
		return &service.Claims{Role: "interviewer", RegisteredClaims: jwt.RegisteredClaims{Subject: "9"}}, nil
	case "bad-subject":
		return &service.Claims{Role: "student", RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}, nil
	}
	return nil, errors.New("invalid token")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", Auth(fakeAuth{}), func(ctx *gin.Context) {
		actor, ok := CurrentActor(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": actor.UserID, "role": actor.Role})
	})
	r.GET("/console", Auth(fakeAuth{}), RequireRole("interviewer", "admin"), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func TestAuth(t *testing.T) {
	r := newRouter()
	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"not bearer", "/me", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"bad subject", "/me", "Bearer bad-subject", http.StatusUnauthorized},
		{"student", "/me", "Bearer student", http.StatusOK},
		{"student on console", "/console", "Bearer student", http.StatusForbidden},
		{"interviewer on console", "/console", "Bearer interviewer", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if id := w.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q", id)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if id := w.Header().Get(RequestIDHeader); id != "abc-123" {
		t.Errorf("request id = %q, want the caller's", id)
	}
}
