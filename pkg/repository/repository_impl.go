package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/pkg/db/option"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

func (r *store[T]) Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error) {
	var result []*T
	err := r.buildQuery(ctx, query, opts...).Find(&result).Error
	return result, err
}

// FindOne returns nil, nil when nothing matches.
func (r *store[T]) FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error) {
	var result T
	err := r.buildQuery(ctx, query, opts...).Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) FindByID(ctx context.Context, id snowflake.ID) (*T, error) {
	return r.FindOne(ctx, nil, option.WithWhere("id = ?", id))
}

func (r *store[T]) Create(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

// Update writes every key in fields, zero values included, and reports how
// many rows matched.
func (r *store[T]) Update(ctx context.Context, id snowflake.ID, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *store[T]) Delete(ctx context.Context, id snowflake.ID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return res.RowsAffected, res.Error
}

func (r *store[T]) Count(ctx context.Context, query *T, opts ...option.QueryOption) (int64, error) {
	var count int64
	err := r.buildQuery(ctx, query, opts...).Count(&count).Error
	return count, err
}

// Paginate counts the filtered set and then loads the requested window of
// it. Callers own ordering; without one the window is ordered by id.
func (r *store[T]) Paginate(ctx context.Context, query *T, page pagination.Page, opts ...option.QueryOption) (pagination.Result[T], error) {
	total, err := r.Count(ctx, query, opts...)
	if err != nil {
		return pagination.Result[T]{}, err
	}

	records := make([]T, 0, page.Limit())
	if !page.PastEnd(total) {
		stmt := r.buildQuery(ctx, query, opts...)
		if _, ordered := stmt.Statement.Clauses["ORDER BY"]; !ordered {
			stmt = stmt.Order("id asc")
		}
		err = stmt.Offset(page.Offset()).Limit(page.Limit()).Find(&records).Error
		if err != nil {
			return pagination.Result[T]{}, err
		}
	}

	return pagination.NewResult(records, total, page), nil
}

func (r *store[T]) buildQuery(ctx context.Context, filter *T, opts ...option.QueryOption) *gorm.DB {
	db := r.db.WithContext(ctx).Model(new(T))
	if filter != nil {
		db = db.Where(filter)
	}

	for _, opt := range opts {
		db = opt.Apply(db)
	}

	return db
}
