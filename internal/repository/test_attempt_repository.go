package repository

import (
	"github.com/lshigami/Placemate/internal/model"
	"gorm.io/gorm"
)

type TestAttemptRepository interface {
	WithTx(tx *gorm.DB) TestAttemptRepository
	Create(attempt *model.TestAttempt) error
	FindByTestAndUser(testID, userID uint) (*model.TestAttempt, error)
	FindAllByTest(testID uint) ([]model.TestAttempt, error)
	FindAllByUser(userID uint) ([]model.TestAttempt, error)
	AttemptedTestIDs(userID uint) (map[uint]bool, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) WithTx(tx *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: tx}
}

func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Omit("Test", "User").Create(attempt).Error
}

func (r *testAttemptRepository) FindByTestAndUser(testID, userID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.Where("test_id = ? AND user_id = ?", testID, userID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByTest(testID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.Preload("User").
		Where("test_id = ?", testID).
		Order("percentage DESC").Order("submitted_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) FindAllByUser(userID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.Preload("Test").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) AttemptedTestIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	if err := r.db.Model(&model.TestAttempt{}).Where("user_id = ?", userID).Pluck("test_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
