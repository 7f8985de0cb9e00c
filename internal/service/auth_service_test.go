package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/telecel/helpdesk/internal/domain"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	userSvc := NewUserService(users, 4)
	authSvc := NewAuthService(testAuthConfig(), users)
	ctx := context.Background()

	created, err := userSvc.CreateUser(ctx, CreateUserInput{
		Username: "admin",
		FullName: "System Administrator",
		Role:     domain.RoleAdmin,
		Password: "admin123",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	user, token, exp, err := authSvc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("user ID = %q, want %q", user.ID, created.ID)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry %v is in the past", exp)
	}

	claims, err := authSvc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != created.ID || claims.Username != "admin" || claims.Role != domain.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	userSvc := NewUserService(users, 4)
	authSvc := NewAuthService(testAuthConfig(), users)
	ctx := context.Background()

	if _, err := userSvc.CreateUser(ctx, CreateUserInput{
		Username: "john.doe",
		FullName: "John Doe",
		Password: "correct-pw",
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	for _, tc := range []struct {
		name, username, password string
	}{
		{"wrong password", "john.doe", "wrong-pw"},
		{"unknown user", "nobody", "correct-pw"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := authSvc.Login(ctx, tc.username, tc.password)
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) {
				t.Fatalf("err = %v, want DomainError", err)
			}
			if domainErr.Code != "UNAUTHORIZED" || domainErr.Message != "invalid username or password" {
				t.Errorf("got %q/%q, want the shared UNAUTHORIZED message", domainErr.Code, domainErr.Message)
			}
		})
	}
}
