package domain

import (
	"context"
	"encoding/json"
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

// CodeLocker serializes product code allocation across instances.
type CodeLocker interface {
	Acquire(ctx context.Context) (release func(), err error)
}

type ListRequest struct {
	Page       pagination.Page
	CategoryID string
	Query      string
}

// CreateRequest accepts the image under either "image" (form payloads) or
// "imageUrl".
type CreateRequest struct {
	NameEn     string      `json:"nameEn"`
	NameKh     string      `json:"nameKh"`
	CategoryID json.Number `json:"categoryId"`
	SKU        string      `json:"sku"`
	Image      *string     `json:"image"`
	ImageURL   *string     `json:"imageUrl"`
}

type UpdateRequest struct {
	ID         string      `json:"-"`
	NameEn     string      `json:"nameEn"`
	NameKh     string      `json:"nameKh"`
	CategoryID json.Number `json:"categoryId"`
	SKU        string      `json:"sku"`
	Image      *string     `json:"image"`
	ImageURL   *string     `json:"imageUrl"`
}

type Response struct {
	ID          string    `json:"id"`
	ProductCode string    `json:"productCode"`
	NameEn      string    `json:"nameEn"`
	NameKh      string    `json:"nameKh"`
	CategoryID  string    `json:"categoryId"`
	SKU         string    `json:"sku"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedBy   *string   `json:"createdBy"`
	UpdatedBy   *string   `json:"updatedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidCategory  = errors.New("invalid_category")
	ErrCategoryNotFound = errors.New("category_not_found")
	ErrNotFound         = errors.New("not_found")
	ErrCodeConflict     = errors.New("product_code_conflict")
)
