package repository

import (
	"gorm.io/gorm"

	"github.com/quickgrade/quickgrade/internal/model"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id string) (*model.User, error)
	// FirstByRole backs the development-only demo-owner fallback.
	FirstByRole(role model.Role) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FirstByRole(role model.Role) (*model.User, error) {
	var user model.User
	if err := r.db.Where("role = ?", role).Order("created_at ASC").First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
