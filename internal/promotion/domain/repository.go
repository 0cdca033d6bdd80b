package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, promotion *Promotion) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Promotion, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Page) (pagination.Result[Promotion], error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}

type ListFilter struct {
	Query string
	// ActiveOn keeps promotions whose date range contains the given day.
	ActiveOn *time.Time
}
