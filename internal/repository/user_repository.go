package repository

import (
	"github.com/lshigami/Placemate/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	// FindByIDForUpdate locks the row for the rest of the transaction.
	FindByIDForUpdate(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindAllByRole(role string) ([]model.User, error)
	UpdateSubjectScores(user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDForUpdate(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAllByRole(role string) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("role = ?", role).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateSubjectScores(user *model.User) error {
	return r.db.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"aptitude_score":      user.AptitudeScore,
		"aptitude_attempts":   user.AptitudeAttempts,
		"coding_score":        user.CodingScore,
		"coding_attempts":     user.CodingAttempts,
		"soft_skill_score":    user.SoftSkillScore,
		"soft_skill_attempts": user.SoftSkillAttempts,
	}).Error
}
