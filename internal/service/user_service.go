package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"velora.id/homeserve/internal/dto"
	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/pkg/apperror"
)

type UserService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error)
	ActivateProfessional(ctx context.Context, id uint) error
	ListProfessionals(ctx context.Context, inactiveOnly bool) ([]dto.ProfessionalListItem, error)
	DeleteProfessional(ctx context.Context, id uint) error
}

type userService struct {
	users     repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewUserService(users repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) UserService {
	return &userService{
		users:     users,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Register creates a customer or a professional. Customers are active
// immediately; professionals wait for admin activation before they can take
// requests.
func (s *userService) Register(ctx context.Context, input dto.RegisterInput) (*model.User, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("user already exists: %w", apperror.ErrBadRequest)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.users.FindRoleByName(ctx, input.Role)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("role %s not found: %w", input.Role, apperror.ErrNotFound)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Phone:        input.Phone,
		City:         input.City,
		Pin:          input.Pin,
		Address:      input.Address,
		Active:       input.Role == model.RoleCustomer,
	}

	if input.Role == model.RoleProfessional {
		user.Experience = input.Experience
		user.ServiceType = input.ServiceType
	}

	if err := s.users.Create(ctx, user, role); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("invalid user: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("wrong password: %w", apperror.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprint(user.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	roleName := ""
	if len(user.Roles) > 0 {
		roleName = user.Roles[0].Name
	}

	return &dto.LoginResponse{
		Token: token,
		Role:  roleName,
		ID:    user.ID,
		Email: user.Email,
		Pin:   user.Pin,
	}, nil
}

func (s *userService) ActivateProfessional(ctx context.Context, id uint) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("user not present: %w", apperror.ErrNotFound)
		}
		return err
	}

	if user.Active {
		return fmt.Errorf("user already active: %w", apperror.ErrBadRequest)
	}

	return s.users.SetActive(ctx, id, true)
}

func (s *userService) ListProfessionals(ctx context.Context, inactiveOnly bool) ([]dto.ProfessionalListItem, error) {
	professionals, err := s.users.FindByRole(ctx, model.RoleProfessional, false)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProfessionalListItem, 0, len(professionals))
	for _, pro := range professionals {
		if inactiveOnly && pro.Active {
			continue
		}
		items = append(items, dto.ProfessionalListItem{
			ID:          pro.ID,
			Name:        pro.Username,
			ServiceType: pro.ServiceType,
			Experience:  pro.Experience,
			Active:      pro.Active,
		})
	}
	return items, nil
}

func (s *userService) DeleteProfessional(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}
