package identity

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"openmelody/internal/apperr"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Register(ctx context.Context, username, password, fullName string) (string, error) {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if username == "" || len(username) > 50 {
		return "", apperr.Validation("username must be between 1 and 50 characters")
	}
	if password == "" {
		return "", apperr.Validation("password is required")
	}
	if fullName == "" {
		return "", apperr.Validation("fullname is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return s.store.CreateUser(ctx, username, string(hash), fullName)
}

// VerifyUser resolves a username/password pair to a user id. Wrong username
// and wrong password are indistinguishable to the caller.
func (s *Service) VerifyUser(ctx context.Context, username, password string) (string, error) {
	id, hash, err := s.store.GetCredentials(ctx, username)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", apperr.Unauthorized("invalid credentials")
	}
	return id, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.store.GetUserByID(ctx, id)
}
