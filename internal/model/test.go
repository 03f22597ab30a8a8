package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	CategoryAptitude  = "aptitude"
	CategorySoftSkill = "soft_skill"
)

type Test struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	InterviewerID   uint           `json:"interviewer_id" gorm:"not null;index"`
	CompanyName     string         `json:"company_name"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description,omitempty"`
	Category        string         `json:"category" gorm:"not null;default:'aptitude'"` // "aptitude", "soft_skill"
	ScheduledAt     time.Time      `json:"scheduled_at" gorm:"not null;index"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	NegativeMarks   float64        `json:"negative_marks" gorm:"not null;default:0"`
	NumQuestions    int            `json:"num_questions" gorm:"not null"` // declared count, the scoring denominator
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
