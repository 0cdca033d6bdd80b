package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/category/domain"
	"github.com/smallbiznis/backoffice/pkg/db/option"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"github.com/smallbiznis/backoffice/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return repository.ProvideStore[domain.Category](db).Create(ctx, category)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Category, error) {
	return repository.ProvideStore[domain.Category](db).FindByID(ctx, id)
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, nameEn string) (*domain.Category, error) {
	return repository.ProvideStore[domain.Category](db).FindOne(ctx, nil, option.WithWhere("name_en = ?", nameEn))
}

func (r *repo) List(ctx context.Context, db *gorm.DB, query string, page pagination.Page) (pagination.Result[domain.Category], error) {
	return repository.ProvideStore[domain.Category](db).Paginate(ctx, nil, page,
		option.WithContains(query, "name_en", "name_kh"),
		option.WithSortBy("name_en asc", "id asc"),
	)
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error) {
	return repository.ProvideStore[domain.Category](db).Update(ctx, id, fields)
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	return repository.ProvideStore[domain.Category](db).Delete(ctx, id)
}

func (r *repo) CountProducts(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Table("products").Where("category_id = ?", id).Count(&count).Error
	return count, err
}
