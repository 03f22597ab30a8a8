package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent     = "student"
	RoleInterviewer = "interviewer"
	RoleAdmin       = "admin"

	SubjectCoding = "coding"
)

type User struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	Name              string         `json:"name" gorm:"not null"`
	Email             string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash      string         `json:"-" gorm:"not null"`
	Role              string         `json:"role" gorm:"not null;default:'student';index"` // "student", "interviewer", "admin"
	USN               string         `json:"usn,omitempty"`
	Year              string         `json:"year,omitempty"`
	CompanyName       string         `json:"company_name,omitempty"` // interviewers only
	AptitudeScore     float64        `json:"aptitude_score" gorm:"not null;default:0"`
	AptitudeAttempts  int            `json:"aptitude_attempts" gorm:"not null;default:0"`
	CodingScore       float64        `json:"coding_score" gorm:"not null;default:0"`
	CodingAttempts    int            `json:"coding_attempts" gorm:"not null;default:0"`
	SoftSkillScore    float64        `json:"soft_skill_score" gorm:"not null;default:0"`
	SoftSkillAttempts int            `json:"soft_skill_attempts" gorm:"not null;default:0"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
