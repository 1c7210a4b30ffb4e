package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	svc := NewAuthService("admin@example.com", string(hash))
	ctx := context.Background()

	if err := svc.Login(ctx, LoginInput{Email: "admin@example.com", Password: "s3cret"}); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
	if err := svc.Login(ctx, LoginInput{Email: "admin@example.com", Password: "wrong"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrAuthInvalidCredentials", err)
	}
	if err := svc.Login(ctx, LoginInput{Email: "intruder@example.com", Password: "s3cret"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("wrong email err = %v, want ErrAuthInvalidCredentials", err)
	}
}
