package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/customer/domain"
	"github.com/smallbiznis/backoffice/pkg/db/option"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"github.com/smallbiznis/backoffice/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return repository.ProvideStore[domain.Customer](db).Create(ctx, customer)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	return repository.ProvideStore[domain.Customer](db).FindByID(ctx, id)
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter, page pagination.Page) (pagination.Result[domain.Customer], error) {
	opts := []option.QueryOption{
		option.WithContains(filter.Name, "first_name", "last_name"),
		option.WithSortBy("id asc"),
	}
	if email := strings.ToLower(strings.TrimSpace(filter.Email)); email != "" {
		opts = append(opts, option.WithWhere("LOWER(email) = ?", email))
	}
	return repository.ProvideStore[domain.Customer](db).Paginate(ctx, nil, page, opts...)
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error) {
	return repository.ProvideStore[domain.Customer](db).Update(ctx, id, fields)
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	return repository.ProvideStore[domain.Customer](db).Delete(ctx, id)
}
