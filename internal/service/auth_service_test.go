package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/solidus85/evvie-time-tracker/config"
	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/model"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
	"github.com/solidus85/evvie-time-tracker/pkg/jwt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}
}

func setupTestAuthService(t *testing.T, cfg *config.Config) (AuthService, *repository.Repository) {
	t.Helper()
	repo := newMockRepository()
	return NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop()), repo
}

func seedUser(t *testing.T, repo *repository.Repository, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{Username: username, PasswordHash: string(hash), DisplayName: username}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Login(t *testing.T) {
	svc, repo := setupTestAuthService(t, testAuthConfig())
	seedUser(t, repo, "operator", "correct horse")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "operator", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if resp.User.Username != "operator" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, repo := setupTestAuthService(t, testAuthConfig())
	seedUser(t, repo, "operator", "correct horse")

	cases := []dto.LoginRequest{
		{Username: "operator", Password: "wrong"},
		{Username: "nobody", Password: "correct horse"},
	}
	for _, req := range cases {
		if _, err := svc.Login(context.Background(), &req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", req.Username, err)
		}
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, repo := setupTestAuthService(t, testAuthConfig())
	seedUser(t, repo, "operator", "correct horse")
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{Username: "operator", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	resp, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a new access token")
	}

	// An access token is the wrong grant for a refresh.
	if _, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.AccessToken}); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("expected ErrWrongTokenType, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo := setupTestAuthService(t, testAuthConfig())
	user := seedUser(t, repo, "operator", "old password")
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "new password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	err = svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "old password", NewPassword: "new password",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "operator", Password: "new password"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "operator", Password: "old password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password should be rejected, got %v", err)
	}
}

func TestAuthService_EnsureOperator(t *testing.T) {
	cfg := testAuthConfig()
	cfg.Auth.OperatorUsername = "operator"
	cfg.Auth.OperatorPassword = "bootstrap secret"
	svc, repo := setupTestAuthService(t, cfg)
	ctx := context.Background()

	if err := svc.EnsureOperator(ctx); err != nil {
		t.Fatalf("EnsureOperator: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "operator", Password: "bootstrap secret"}); err != nil {
		t.Fatalf("login as seeded operator: %v", err)
	}

	// A second call must not reseed or duplicate.
	if err := svc.EnsureOperator(ctx); err != nil {
		t.Fatalf("second EnsureOperator: %v", err)
	}
	count, err := repo.User.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestAuthService_EnsureOperator_Unconfigured(t *testing.T) {
	svc, repo := setupTestAuthService(t, testAuthConfig())
	ctx := context.Background()

	if err := svc.EnsureOperator(ctx); err != nil {
		t.Fatalf("EnsureOperator: %v", err)
	}
	count, err := repo.User.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("no account should be seeded without config, got %d users", count)
	}
}
