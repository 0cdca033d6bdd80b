package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/backoffice/internal/audit/domain"
	"github.com/smallbiznis/backoffice/pkg/db/option"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"github.com/smallbiznis/backoffice/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.AuditLog) error {
	if entry == nil {
		return nil
	}
	return repository.ProvideStore[domain.AuditLog](db).Create(ctx, entry)
}

// List returns the newest entries first.
func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Page) (pagination.Result[domain.AuditLog], error) {
	opts := []option.QueryOption{option.WithSortBy("created_at desc", "id desc")}

	if action := strings.TrimSpace(filter.Action); action != "" {
		opts = append(opts, option.WithWhere("action = ?", action))
	}
	if targetType := strings.TrimSpace(filter.TargetType); targetType != "" {
		opts = append(opts, option.WithWhere("target_type = ?", targetType))
	}
	if targetID := strings.TrimSpace(filter.TargetID); targetID != "" {
		opts = append(opts, option.WithWhere("target_id = ?", targetID))
	}

	return repository.ProvideStore[domain.AuditLog](db).Paginate(ctx, nil, page, opts...)
}
