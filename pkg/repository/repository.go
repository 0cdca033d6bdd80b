// Package repository is the generic persistence provider shared by the
// catalog resources.
package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/pkg/db/option"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id snowflake.ID) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, id snowflake.ID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id snowflake.ID) (int64, error)
	Count(ctx context.Context, query *T, opts ...option.QueryOption) (int64, error)
	Paginate(ctx context.Context, query *T, page pagination.Page, opts ...option.QueryOption) (pagination.Result[T], error)
}
