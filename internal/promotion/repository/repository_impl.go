package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/promotion/domain"
	"github.com/smallbiznis/backoffice/pkg/db/option"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"github.com/smallbiznis/backoffice/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, promotion *domain.Promotion) error {
	return repository.ProvideStore[domain.Promotion](db).Create(ctx, promotion)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Promotion, error) {
	return repository.ProvideStore[domain.Promotion](db).FindByID(ctx, id)
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Page) (pagination.Result[domain.Promotion], error) {
	opts := []option.QueryOption{
		option.WithContains(filter.Query, "promotion_code", "description"),
		option.WithSortBy("start_date desc", "id asc"),
	}
	if filter.ActiveOn != nil {
		opts = append(opts, option.WithWhere("start_date <= ? AND end_date >= ?", *filter.ActiveOn, *filter.ActiveOn))
	}
	return repository.ProvideStore[domain.Promotion](db).Paginate(ctx, nil, page, opts...)
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error) {
	return repository.ProvideStore[domain.Promotion](db).Update(ctx, id, fields)
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	return repository.ProvideStore[domain.Promotion](db).Delete(ctx, id)
}
