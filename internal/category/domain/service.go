package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/backoffice/pkg/db/pagination"
)

type Service interface {
	List(ctx context.Context, req ListRequest) (pagination.Result[Response], error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Page  pagination.Page
	Query string
}

type CreateRequest struct {
	NameEn      string `json:"nameEn"`
	NameKh      string `json:"nameKh"`
	Description string `json:"description"`
}

type UpdateRequest struct {
	ID          string `json:"-"`
	NameEn      string `json:"nameEn"`
	NameKh      string `json:"nameKh"`
	Description string `json:"description"`
}

type Response struct {
	ID          string    `json:"id"`
	NameEn      string    `json:"nameEn"`
	NameKh      string    `json:"nameKh"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("not_found")
	ErrInUse       = errors.New("category_in_use")
)
