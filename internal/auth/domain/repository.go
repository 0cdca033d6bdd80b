package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(ctx context.Context, db *gorm.DB, user *User) error
	FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindUserByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	TouchLastLogin(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error

	CreateSession(ctx context.Context, db *gorm.DB, session *Session) error
	FindSessionByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*Session, error)
	UpdateLastSeen(ctx context.Context, db *gorm.DB, sessionID snowflake.ID, lastSeen time.Time) error
	RevokeSession(ctx context.Context, db *gorm.DB, sessionID snowflake.ID, revokedAt time.Time) error
}
