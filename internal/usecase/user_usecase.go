package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"attendance-backend/config"
	"attendance-backend/internal/model"
	"attendance-backend/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmployeeIDTaken    = errors.New("employee id already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserUsecase struct {
	repo repository.UserRepository
}

func NewUserUsecase(repo repository.UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", "dev-secret-change-me"))
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	EmployeeID string
	Department string
}

// Register creates a user account. When no employee ID is supplied a
// sequential one is issued (EMP001, EMP002, ...).
func (u *UserUsecase) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, "", ErrInvalidEmail
	}

	existing, err := u.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	employeeID := in.EmployeeID
	if employeeID == "" {
		employeeID, err = u.nextEmployeeID(ctx)
		if err != nil {
			return nil, "", err
		}
	} else {
		taken, err := u.repo.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			return nil, "", err
		}
		if taken != nil {
			return nil, "", ErrEmployeeIDTaken
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	role := in.Role
	if role == "" {
		role = model.RoleEmployee
	}

	user := model.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   string(hashed),
		Role:       role,
		EmployeeID: employeeID,
		Department: in.Department,
	}
	if err := u.repo.Create(ctx, &user); err != nil {
		return nil, "", err
	}

	token, err := u.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (u *UserUsecase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (u *UserUsecase) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *UserUsecase) issueToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// nextEmployeeID continues the EMPnnn sequence from the last issued ID.
func (u *UserUsecase) nextEmployeeID(ctx context.Context) (string, error) {
	last, err := u.repo.LastEmployeeID(ctx)
	if err != nil {
		return "", err
	}
	if last == "" {
		return "EMP001", nil
	}
	num, err := strconv.Atoi(strings.TrimFunc(last, func(r rune) bool { return r < '0' || r > '9' }))
	if err != nil {
		return "EMP001", nil
	}
	return fmt.Sprintf("EMP%03d", num+1), nil
}
