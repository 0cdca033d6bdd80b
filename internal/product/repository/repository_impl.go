package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	"github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/pkg/db/option"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"github.com/smallbiznis/backoffice/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return repository.ProvideStore[domain.Product](db).Create(ctx, product)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	return repository.ProvideStore[domain.Product](db).FindByID(ctx, id)
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Page) (pagination.Result[domain.Product], error) {
	opts := []option.QueryOption{
		option.WithContains(filter.Query, "name_en", "name_kh", "product_code", "sku"),
		option.WithSortBy("product_code asc", "id asc"),
	}
	if filter.CategoryID != 0 {
		opts = append(opts, option.WithWhere("category_id = ?", filter.CategoryID))
	}
	return repository.ProvideStore[domain.Product](db).Paginate(ctx, nil, page, opts...)
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error) {
	return repository.ProvideStore[domain.Product](db).Update(ctx, id, fields)
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	return repository.ProvideStore[domain.Product](db).Delete(ctx, id)
}

func (r *repo) CategoryExists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	count, err := repository.ProvideStore[categorydomain.Category](db).Count(ctx, nil, option.WithWhere("id = ?", id))
	return count > 0, err
}

func (r *repo) NextCodeNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	now := time.Now().UTC()

	// The increment takes the row lock, so concurrent allocators queue here
	// until the holder commits or rolls back.
	res := tx.WithContext(ctx).
		Model(&domain.CodeSequence{}).
		Where("name = ?", domain.ProductCodeSequence).
		Updates(map[string]any{
			"next_number": gorm.Expr("next_number + 1"),
			"updated_at":  now,
		})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		highest, err := r.highestCodeNumber(ctx, tx)
		if err != nil {
			return 0, err
		}
		allocated := highest + 1
		seq := &domain.CodeSequence{
			Name:       domain.ProductCodeSequence,
			NextNumber: allocated + 1,
			UpdatedAt:  now,
		}
		if err := tx.WithContext(ctx).Create(seq).Error; err != nil {
			return 0, err
		}
		return allocated, nil
	}

	var seq domain.CodeSequence
	if err := tx.WithContext(ctx).Where("name = ?", domain.ProductCodeSequence).Take(&seq).Error; err != nil {
		return 0, err
	}
	return seq.NextNumber - 1, nil
}

func (r *repo) SyncCodeSequence(ctx context.Context, db *gorm.DB) error {
	highest, err := r.highestCodeNumber(ctx, db)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).
		Model(&domain.CodeSequence{}).
		Where("name = ? AND next_number <= ?", domain.ProductCodeSequence, highest).
		Updates(map[string]any{
			"next_number": highest + 1,
			"updated_at":  time.Now().UTC(),
		}).Error
}

// highestCodeNumber orders by length first so P10000 sorts after P9999.
func (r *repo) highestCodeNumber(ctx context.Context, db *gorm.DB) (int64, error) {
	var codes []string
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("product_code LIKE ?", domain.CodePrefix+"%").
		Order("LENGTH(product_code) DESC").
		Order("product_code DESC").
		Limit(1).
		Pluck("product_code", &codes).Error
	if err != nil || len(codes) == 0 {
		return 0, err
	}
	n, _ := domain.ParseCode(codes[0])
	return n, nil
}
