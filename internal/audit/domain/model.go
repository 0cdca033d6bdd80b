package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog is one recorded change to a catalog record.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorID    *snowflake.ID     `gorm:"column:actor_id;index" json:"actorId,omitempty"`
	ActorEmail string            `gorm:"column:actor_email;type:text;not null;default:''" json:"actorEmail"`
	Action     string            `gorm:"column:action;type:varchar(64);not null;index" json:"action"`
	TargetType string            `gorm:"column:target_type;type:varchar(32);not null;index:idx_audit_logs_target" json:"targetType"`
	TargetID   *string           `gorm:"column:target_id;type:varchar(64);index:idx_audit_logs_target" json:"targetId,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	IPAddress  *string           `gorm:"column:ip_address;type:text" json:"ipAddress,omitempty"`
	UserAgent  *string           `gorm:"column:user_agent;type:text" json:"userAgent,omitempty"`
	CreatedAt  time.Time         `gorm:"column:created_at;not null;index" json:"createdAt"`
}

func (AuditLog) TableName() string { return "audit_logs" }

const (
	TargetProduct   = "product"
	TargetCategory  = "category"
	TargetCustomer  = "customer"
	TargetPromotion = "promotion"
)
