package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, filter ListCustomerFilter, page pagination.Page) (pagination.Result[Customer], error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
