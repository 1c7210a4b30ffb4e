package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService authenticates the single configured admin. There is no user
// table in this system; the credential lives in configuration as a bcrypt
// hash.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) error
}

type authService struct {
	adminEmail        string
	adminPasswordHash string
}

func NewAuthService(adminEmail, adminPasswordHash string) AuthService {
	return &authService{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
	}
}

func (s *authService) Login(_ context.Context, input LoginInput) error {
	if input.Email != s.adminEmail {
		// Still burn a bcrypt comparison so the response time does not
		// reveal whether the email matched.
		_ = bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(input.Password))
		return ErrAuthInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrAuthInvalidCredentials
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}
