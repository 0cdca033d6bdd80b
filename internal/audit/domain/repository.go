package domain

import (
	"context"

	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Action     string
	TargetType string
	TargetID   string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Page) (pagination.Result[AuditLog], error)
}
