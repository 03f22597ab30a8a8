package repository

import (
	"github.com/lshigami/Placemate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestRepository interface {
	WithTx(tx *gorm.DB) TestRepository
	Create(test *model.Test) error
	Update(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	// FindByIDForUpdate locks the test row until the transaction ends.
	// Writers that check the question count against NumQuestions go
	// through it.
	FindByIDForUpdate(id uint) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindAll() ([]model.Test, error)
	FindByInterviewer(interviewerID uint) ([]model.Test, error)
	Delete(id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) WithTx(tx *gorm.DB) TestRepository {
	return &testRepository{db: tx}
}

func (r *testRepository) Create(test *model.Test) error {
	// Questions attached to test are created with it.
	return r.db.Create(test).Error
}

func (r *testRepository) Update(test *model.Test) error {
	return r.db.Omit("Questions").Save(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDForUpdate(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.sl_no ASC").Order("questions.id ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAll() ([]model.Test, error) {
	var tests []model.Test
	if err := r.db.Order("scheduled_at ASC").Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *testRepository) FindByInterviewer(interviewerID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Where("interviewer_id = ?", interviewerID).Order("scheduled_at DESC").Find(&tests).Error
	return tests, err
}

func (r *testRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", id).Delete(&model.TestAttempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, id).Error
	})
}
