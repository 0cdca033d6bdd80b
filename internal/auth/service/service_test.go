package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	"github.com/smallbiznis/backoffice/internal/auth/repository"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (authdomain.Service, *gorm.DB) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	svc := New(Params{
		DB:     dbConn,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Config: config.Config{SessionTTL: time.Hour},
	})
	return svc, dbConn
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if user == nil {
		t.Fatal("expected user")
	}

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUserRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "Bob@Example.com", Password: "strong-password"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.DisplayName != "bob" {
		t.Fatalf("expected display name bob, got %s", user.DisplayName)
	}

	if _, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "bob@example.com", Password: "another-password"}); err != authdomain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "carol@example.com", Password: "short"}); err != authdomain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svc, dbConn := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "ops@example.com", Password: "open-sesame"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	res, err := svc.Login(ctx, authdomain.LoginRequest{Email: "ops@example.com", Password: "open-sesame"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.RawToken == "" {
		t.Fatal("expected raw token")
	}

	var stored authdomain.Session
	if err := dbConn.First(&stored, "id = ?", res.SessionID).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if stored.SessionTokenHash == res.RawToken {
		t.Fatal("raw token must not be stored")
	}

	session, user, err := svc.Authenticate(ctx, res.RawToken)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if session.ID != res.SessionID || user.Email != "ops@example.com" {
		t.Fatalf("unexpected session %v / user %v", session.ID, user.Email)
	}

	if err := svc.Logout(ctx, res.RawToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, _, err := svc.Authenticate(ctx, res.RawToken); err != authdomain.ErrSessionRevoked {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
	if _, _, err := svc.Authenticate(ctx, "unknown-token"); err != authdomain.ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, dbConn := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "late@example.com", Password: "open-sesame"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	res, err := svc.Login(ctx, authdomain.LoginRequest{Email: "late@example.com", Password: "open-sesame"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	past := time.Now().UTC().Add(-time.Minute)
	if err := dbConn.Model(&authdomain.Session{}).Where("id = ?", res.SessionID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("expire session: %v", err)
	}

	if _, _, err := svc.Authenticate(ctx, res.RawToken); err != authdomain.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
