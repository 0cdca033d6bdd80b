package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	CategoryID snowflake.ID
	Query      string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Page) (pagination.Result[Product], error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	CategoryExists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)

	// NextCodeNumber draws the next number from the code sequence. It must run
	// inside the transaction that inserts the product so a failed insert
	// returns the number.
	NextCodeNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	// SyncCodeSequence moves the sequence past the highest stored code.
	SyncCodeSequence(ctx context.Context, db *gorm.DB) error
}
