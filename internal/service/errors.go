package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrTestNotOpen          = errors.New("test is not open for submissions")
	ErrAlreadySubmitted     = errors.New("test has already been submitted")
	ErrIncompleteSubmission = errors.New("all questions must be answered before submitting")
	ErrNoQuestions          = errors.New("test has no questions yet")
	ErrAIUnavailable        = errors.New("AI service is unavailable")
	ErrJudgeUnavailable     = errors.New("code judge is unavailable")
)

// notFound maps gorm's record-not-found onto ErrNotFound and leaves other
// errors untouched.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Actor is the authenticated caller of a service method.
type Actor struct {
	UserID uint
	Role   string
}
