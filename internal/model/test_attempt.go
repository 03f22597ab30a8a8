package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestAttempt is a student's submitted answers for one test. There is at most
// one per (test, user) and it is never rewritten.
type TestAttempt struct {
	ID            uint                               `gorm:"primarykey" json:"id"`
	TestID        uint                               `json:"test_id" gorm:"not null;uniqueIndex:idx_attempt_test_user"`
	Test          Test                               `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID        uint                               `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_test_user;index"`
	User          User                               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Answers       datatypes.JSONType[map[int]string] `json:"answers"`
	CorrectCount  int                                `json:"correct_count"`
	WrongCount    int                                `json:"wrong_count"`
	RawScore      float64                            `json:"raw_score"`
	Percentage    float64                            `json:"percentage"`
	AutoSubmitted bool                               `json:"auto_submitted"`
	SubmittedAt   time.Time                          `json:"submitted_at"`
	CreatedAt     time.Time                          `json:"created_at"`
	UpdatedAt     time.Time                          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt                     `gorm:"index" json:"-"`
}
