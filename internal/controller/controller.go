// Package controller holds helpers shared by the admin and user handlers.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/middleware"
	"github.com/lshigami/Placemate/internal/service"
	"github.com/rs/zerolog/log"
)

// StatusFor maps a service error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrTestNotOpen), errors.Is(err, service.ErrNoQuestions):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrIncompleteSubmission):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrAIUnavailable), errors.Is(err, service.ErrJudgeUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// RespondError writes err as a dto.ErrorResponse. Internal errors are logged
// and their text is not sent to the client.
func RespondError(ctx *gin.Context, op string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", middleware.GetRequestID(ctx)).Msgf("%s: Service error", op)
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	log.Warn().Err(err).Str("request_id", middleware.GetRequestID(ctx)).Msgf("%s: Request rejected", op)
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

// BindError answers a failed ShouldBind call.
func BindError(ctx *gin.Context, op string, err error) {
	log.Warn().Err(err).Msgf("%s: Failed to bind request", op)
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// UintParam reads a positive integer path parameter, answering 400 itself
// when it is malformed.
func UintParam(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || v == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(v), true
}

// Actor returns the authenticated caller, answering 401 itself when absent.
func Actor(ctx *gin.Context) (service.Actor, bool) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return service.Actor{}, false
	}
	return actor, true
}
