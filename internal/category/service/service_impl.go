package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/category/domain"
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
		log:   p.Log.Named("category.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (pagination.Result[domain.Response], error) {
	res, err := s.repo.List(ctx, s.db, strings.TrimSpace(req.Query), req.Page)
	if err != nil {
		return pagination.Result[domain.Response]{}, err
	}

	items := make([]domain.Response, 0, len(res.Records))
	for i := range res.Records {
		items = append(items, toResponse(&res.Records[i]))
	}
	return pagination.NewResult(items, res.Total, req.Page), nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	nameEn := strings.TrimSpace(req.NameEn)
	if nameEn == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	c := &domain.Category{
		ID:          s.genID.Generate(),
		NameEn:      nameEn,
		NameKh:      strings.TrimSpace(req.NameKh),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, c); err != nil {
		return nil, err
	}

	resp := toResponse(c)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	categoryID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	categoryID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	nameEn := strings.TrimSpace(req.NameEn)
	if nameEn == "" {
		return nil, domain.ErrInvalidName
	}

	affected, err := s.repo.Update(ctx, s.db, categoryID, map[string]any{
		"name_en":     nameEn,
		"name_kh":     strings.TrimSpace(req.NameKh),
		"description": strings.TrimSpace(req.Description),
		"updated_at":  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return s.Get(ctx, req.ID)
}

// Delete refuses to remove a category that products still reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	categoryID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inUse, err := s.repo.CountProducts(ctx, tx, categoryID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return domain.ErrInUse
		}

		affected, err := s.repo.Delete(ctx, tx, categoryID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toResponse(c *domain.Category) domain.Response {
	return domain.Response{
		ID:          c.ID.String(),
		NameEn:      c.NameEn,
		NameKh:      c.NameKh,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
