package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pacificpay/payroll-backend-go/internal/domain/auth"
	"github.com/pacificpay/payroll-backend-go/internal/domain/user"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo user.UserRepository
	jwtSvc   jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtSvc jwt.Service) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSvc: jwtSvc}
}

func (s *AuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}
	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Email, u.FullName, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		FullName:    u.FullName,
		Role:        string(u.Role),
	}, nil
}

// CreateUser provisions an actor account. Admin-gated at the handler layer.
func (s *AuthService) CreateUser(ctx context.Context, email, fullName, password string, role user.Role) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	return s.userRepo.Create(ctx, user.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	})
}
