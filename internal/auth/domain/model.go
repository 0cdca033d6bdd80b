// Package domain contains core types for back-office authentication.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// User is a back-office operator account.
type User struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Email        string            `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	DisplayName  string            `gorm:"column:display_name;type:text" json:"displayName"`
	PasswordHash *string           `gorm:"column:password_hash;type:text" json:"-"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	Metadata     datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Session is a persisted login session. Only the sha256 of the token is
// stored.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null"`
}

func (Session) TableName() string { return "sessions" }

// SessionView is returned to clients without exposing token values.
type SessionView struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type CreateUserRequest struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

type LoginResult struct {
	Session   SessionView
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}
