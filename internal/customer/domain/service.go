package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/backoffice/pkg/db/pagination"
)

type ListCustomerRequest struct {
	Page  pagination.Page
	Name  string
	Email string
}

type ListCustomerFilter struct {
	Name  string
	Email string
}

type CustomerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type CreateCustomerRequest struct {
	CustomerInput
}

type UpdateCustomerRequest struct {
	ID string `json:"-"`
	CustomerInput
}

type Response struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (*Response, error)
	List(context.Context, ListCustomerRequest) (pagination.Result[Response], error)
	GetByID(context.Context, string) (*Response, error)
	Update(context.Context, UpdateCustomerRequest) (*Response, error)
	Delete(context.Context, string) error
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrNotFound     = errors.New("not_found")
)
