package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is assigned when signup omits one
const DefaultPassword = "password"

// ErrIdentifierRequired means neither a device id nor an email was given
var ErrIdentifierRequired = errors.New("Either a device id or an email is required")

// Service creates users
type Service struct {
	repo Repository
	cost int
}

// NewService creates a user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// Create validates the signup and stores a new non-admin user
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if req.DeviceID == "" && req.Email == "" {
		return nil, ErrIdentifierRequired
	}

	password := req.Password
	if password == "" {
		password = DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username: req.Username,
		DeviceID: req.DeviceID,
		Email:    req.Email,
		Password: string(hash),
		Admin:    false,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
