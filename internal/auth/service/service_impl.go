package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/auth/domain"
	"github.com/smallbiznis/backoffice/internal/auth/password"
	"github.com/smallbiznis/backoffice/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	sessionTokenBytes = 32
	defaultSessionTTL = 7 * 24 * time.Hour
	minPasswordLength = 8
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Config config.Config
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	sessionTTL time.Duration
}

func New(p Params) domain.Service {
	ttl := p.Config.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("auth.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		sessionTTL: ttl,
	}
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	switch _, err := s.repo.FindUserByEmail(ctx, s.db, email); {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		DisplayName:  displayName(req.DisplayName, email),
		PasswordHash: &hashed,
		Metadata:     datatypes.JSONMap{"password_changed_at": now.Format(time.RFC3339)},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, s.db, user); err != nil {
		return nil, err
	}

	s.log.Info("admin user created", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login verifies the admin's password and opens a session. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil || strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(ctx, s.db, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		return nil, err
	}
	if user.PasswordHash == nil || !password.Verify(req.Password, *user.PasswordHash) {
		s.log.Warn("login rejected", zap.String("user_id", user.ID.String()))
		return nil, domain.ErrInvalidCredentials
	}

	rawToken, session, err := s.openSession(ctx, user, req)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{
		Session: domain.SessionView{
			UserID:      user.ID.String(),
			Email:       user.Email,
			DisplayName: user.DisplayName,
			ExpiresAt:   session.ExpiresAt,
		},
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

// openSession persists a session keyed by the sha256 of a fresh token and
// stamps the user's last login in the same transaction.
func (s *Service) openSession(ctx context.Context, user *domain.User, req domain.LoginRequest) (string, *domain.Session, error) {
	rawToken, err := newSessionToken()
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(req.UserAgent),
		IPAddress:        strings.TrimSpace(req.IPAddress),
		ExpiresAt:        now.Add(s.sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateSession(ctx, tx, session); err != nil {
			return err
		}
		return s.repo.TouchLastLogin(ctx, tx, user.ID, now)
	})
	if err != nil {
		return "", nil, err
	}
	return rawToken, session, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.lookupSession(ctx, rawToken)
	if err != nil {
		return err
	}

	err = s.repo.RevokeSession(ctx, s.db, session.ID, time.Now().UTC())
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.ErrSessionRevoked
	}
	return err
}

// Authenticate resolves a raw session token into its live session and user
// and records the access time.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, *domain.User, error) {
	session, err := s.lookupSession(ctx, rawToken)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	switch {
	case session.RevokedAt != nil:
		return nil, nil, domain.ErrSessionRevoked
	case now.After(session.ExpiresAt):
		return nil, nil, domain.ErrSessionExpired
	}

	user, err := s.repo.FindUserByID(ctx, s.db, session.UserID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil, nil, domain.ErrInvalidSession
	case err != nil:
		return nil, nil, err
	}

	if err := s.repo.UpdateLastSeen(ctx, s.db, session.ID, now); err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func (s *Service) lookupSession(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(token))
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, domain.ErrInvalidSession
	}
	return session, err
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

// displayName falls back to the local part of the email.
func displayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	if local = strings.TrimSpace(local); local != "" {
		return local
	}
	return email
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
