package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	FindByName(ctx context.Context, db *gorm.DB, nameEn string) (*Category, error)
	List(ctx context.Context, db *gorm.DB, query string, page pagination.Page) (pagination.Result[Category], error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	CountProducts(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
