package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/backoffice/pkg/db/pagination"
)

type Service interface {
	List(ctx context.Context, req ListRequest) (pagination.Result[Response], error)
	Create(ctx context.Context, in Input) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, id string, in Input) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Page     pagination.Page
	Query    string
	ActiveOn string
}

type Response struct {
	ID                 string    `json:"id"`
	PromotionCode      string    `json:"promotionCode"`
	Description        string    `json:"description"`
	StartDate          string    `json:"startDate"`
	EndDate            string    `json:"endDate"`
	DiscountPercentage float64   `json:"discountPercentage"`
	ImageURL           string    `json:"imageUrl"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidDate = errors.New("invalid_date")
	ErrNotFound    = errors.New("not_found")
	ErrCodeExists  = errors.New("promotion_code_exists")

	errDateMissing = errors.New("date_missing")
)
