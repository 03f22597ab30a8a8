// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	userIDKey    = "user_id"
	roleKey      = "role"
)

// RequestID reuses the caller's X-Request-ID or mints a new one, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		ctx.Set(requestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(requestIDKey)
}

// Auth rejects requests without a valid bearer token and stores the caller
// in the context.
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}
		claims, err := authService.ParseToken(strings.TrimSpace(token))
		if err != nil {
			log.Debug().Err(err).Str("request_id", GetRequestID(ctx)).Msg("Auth: Rejected token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}
		ctx.Set(userIDKey, userID)
		ctx.Set(roleKey, claims.Role)
		ctx.Next()
	}
}

// RequireRole lets through only callers whose role is listed. It must run
// after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !slices.Contains(roles, ctx.GetString(roleKey)) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "You do not have access to this resource"})
			return
		}
		ctx.Next()
	}
}

// CurrentActor returns the caller stored by Auth.
func CurrentActor(ctx *gin.Context) (service.Actor, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return service.Actor{}, false
	}
	id, ok := v.(uint)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: id, Role: ctx.GetString(roleKey)}, true
}

// SetActor stores an actor the way Auth does. Used by handler tests.
func SetActor(ctx *gin.Context, actor service.Actor) {
	ctx.Set(userIDKey, actor.UserID)
	ctx.Set(roleKey, actor.Role)
}
