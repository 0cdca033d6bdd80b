package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/customer/domain"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Response, error) {
	input, err := normalize(req.CustomerInput)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:        s.genID.Generate(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, customer); err != nil {
		return nil, err
	}

	resp := toResponse(customer)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (pagination.Result[domain.Response], error) {
	res, err := s.repo.List(ctx, s.db, domain.ListCustomerFilter{
		Name:  req.Name,
		Email: req.Email,
	}, req.Page)
	if err != nil {
		return pagination.Result[domain.Response]{}, err
	}

	items := make([]domain.Response, 0, len(res.Records))
	for i := range res.Records {
		items = append(items, toResponse(&res.Records[i]))
	}
	return pagination.NewResult(items, res.Total, req.Page), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	customerID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(customer)
	return &resp, nil
}

// Update replaces every contact field, blank values included.
func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (*domain.Response, error) {
	customerID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	input, err := normalize(req.CustomerInput)
	if err != nil {
		return nil, err
	}

	affected, err := s.repo.Update(ctx, s.db, customerID, map[string]any{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"email":      input.Email,
		"phone":      input.Phone,
		"address":    input.Address,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return s.GetByID(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	customerID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, customerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func normalize(in domain.CustomerInput) (domain.CustomerInput, error) {
	out := domain.CustomerInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
	if out.Email != "" {
		addr, err := mail.ParseAddress(out.Email)
		if err != nil || addr.Address != out.Email {
			return domain.CustomerInput{}, domain.ErrInvalidEmail
		}
	}
	return out, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toResponse(c *domain.Customer) domain.Response {
	return domain.Response{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
