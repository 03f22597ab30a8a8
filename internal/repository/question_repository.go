package repository

import (
	"github.com/lshigami/Placemate/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	CreateBatch(questions []model.Question) error
	FindByTestID(testID uint) ([]model.Question, error)
	CountByTestID(testID uint) (int64, error)
	MaxSlNo(testID uint) (int, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

func (r *questionRepository) FindByTestID(testID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("test_id = ?", testID).Order("sl_no ASC").Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountByTestID(testID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Question{}).Where("test_id = ?", testID).Count(&n).Error
	return n, err
}

func (r *questionRepository) MaxSlNo(testID uint) (int, error) {
	var top int64
	row := r.db.Model(&model.Question{}).Where("test_id = ?", testID).Select("COALESCE(MAX(sl_no), 0)").Row()
	if err := row.Scan(&top); err != nil {
		return 0, err
	}
	return int(top), nil
}
