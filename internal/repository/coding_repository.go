package repository

import (
	"github.com/lshigami/Placemate/internal/model"
	"gorm.io/gorm"
)

type CodingRepository interface {
	WithTx(tx *gorm.DB) CodingRepository
	CreateProblem(problem *model.CodingProblem) error
	FindProblemByID(id uint) (*model.CodingProblem, error)
	FindAllProblems() ([]model.CodingProblem, error)
	CreateSubmission(sub *model.CodingSubmission) error
	FindSubmissionsByUser(userID uint) ([]model.CodingSubmission, error)
}

type codingRepository struct {
	db *gorm.DB
}

func NewCodingRepository(db *gorm.DB) CodingRepository {
	return &codingRepository{db: db}
}

func (r *codingRepository) WithTx(tx *gorm.DB) CodingRepository {
	return &codingRepository{db: tx}
}

func (r *codingRepository) CreateProblem(problem *model.CodingProblem) error {
	return r.db.Create(problem).Error
}

func (r *codingRepository) FindProblemByID(id uint) (*model.CodingProblem, error) {
	var problem model.CodingProblem
	if err := r.db.First(&problem, id).Error; err != nil {
		return nil, err
	}
	return &problem, nil
}

func (r *codingRepository) FindAllProblems() ([]model.CodingProblem, error) {
	var problems []model.CodingProblem
	err := r.db.Order("id ASC").Find(&problems).Error
	return problems, err
}

func (r *codingRepository) CreateSubmission(sub *model.CodingSubmission) error {
	return r.db.Omit("Problem").Create(sub).Error
}

func (r *codingRepository) FindSubmissionsByUser(userID uint) ([]model.CodingSubmission, error) {
	var subs []model.CodingSubmission
	err := r.db.Preload("Problem").Where("user_id = ?", userID).Order("submitted_at DESC").Find(&subs).Error
	return subs, err
}
