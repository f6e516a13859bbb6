package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"attendance-backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error)
	GetEmployees(ctx context.Context) ([]model.User, error)
	CountEmployees(ctx context.Context) (int64, error)
	LastEmployeeID(ctx context.Context) (string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetEmployees(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("role = ?", model.RoleEmployee).Find(&users).Error
	return users, err
}

func (r *userRepository) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleEmployee).Count(&count).Error
	return count, err
}

// LastEmployeeID returns the most recently issued employee ID ("EMP007"),
// or "" when no user has one yet.
func (r *userRepository) LastEmployeeID(ctx context.Context) (string, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("employee_id <> ''").
		Order("created_at desc").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.EmployeeID, nil
}
