package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CodingTestCase struct {
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
	Hidden         bool   `json:"hidden"`
}

type CodingProblem struct {
	ID          uint                                `gorm:"primarykey" json:"id"`
	Title       string                              `json:"title" gorm:"not null;uniqueIndex"`
	Statement   string                              `json:"statement" gorm:"type:text;not null"`
	Difficulty  string                              `json:"difficulty" gorm:"not null;default:'easy'"` // "easy", "medium", "hard"
	TestCases   datatypes.JSONSlice[CodingTestCase] `json:"test_cases"`
	CreatedByID uint                                `json:"created_by_id" gorm:"index"`
	CreatedAt   time.Time                           `json:"created_at"`
	UpdatedAt   time.Time                           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt                      `gorm:"index" json:"-"`
}

type CodingSubmission struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ProblemID   uint           `json:"problem_id" gorm:"not null;index"`
	Problem     CodingProblem  `json:"problem,omitempty" gorm:"foreignKey:ProblemID"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	LanguageID  int            `json:"language_id" gorm:"not null"`
	SourceCode  string         `json:"source_code" gorm:"type:text;not null"`
	Passed      int            `json:"passed"`
	Failed      int            `json:"failed"`
	Percentage  float64        `json:"percentage"`
	Status      string         `json:"status" gorm:"default:'pending'"` // "pending", "accepted", "partial", "rejected", "error"
	Output      string         `json:"output,omitempty" gorm:"type:text"`
	SubmittedAt time.Time      `json:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
