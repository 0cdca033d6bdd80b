package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/promotion/domain"
	"github.com/smallbiznis/backoffice/pkg/db"
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
		log:   p.Log.Named("promotion.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (pagination.Result[domain.Response], error) {
	filter := domain.ListFilter{Query: strings.TrimSpace(req.Query)}
	if strings.TrimSpace(req.ActiveOn) != "" {
		day, err := domain.ParseDate(req.ActiveOn)
		if err != nil {
			return pagination.Result[domain.Response]{}, domain.ErrInvalidDate
		}
		filter.ActiveOn = &day
	}

	res, err := s.repo.List(ctx, s.db, filter, req.Page)
	if err != nil {
		return pagination.Result[domain.Response]{}, err
	}

	items := make([]domain.Response, 0, len(res.Records))
	for i := range res.Records {
		items = append(items, toResponse(&res.Records[i]))
	}
	return pagination.NewResult(items, res.Total, req.Page), nil
}

func (s *Service) Create(ctx context.Context, in domain.Input) (*domain.Response, error) {
	if errs := domain.Validate(in); errs != nil {
		return nil, errs
	}
	start, end, err := dateRange(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	promotion := &domain.Promotion{
		ID:                 s.genID.Generate(),
		PromotionCode:      strings.TrimSpace(in.PromotionCode),
		Description:        strings.TrimSpace(in.Description),
		StartDate:          start,
		EndDate:            end,
		DiscountPercentage: in.DiscountPercentage,
		ImageURL:           strings.TrimSpace(in.ImageURL),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Insert(ctx, s.db, promotion); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrCodeExists
		}
		return nil, err
	}

	resp := toResponse(promotion)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	promotionID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	promotion, err := s.repo.FindByID(ctx, s.db, promotionID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(promotion)
	return &resp, nil
}

// Update overwrites every editable field after re-running validation.
func (s *Service) Update(ctx context.Context, id string, in domain.Input) (*domain.Response, error) {
	promotionID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if errs := domain.Validate(in); errs != nil {
		return nil, errs
	}
	start, end, err := dateRange(in)
	if err != nil {
		return nil, err
	}

	affected, err := s.repo.Update(ctx, s.db, promotionID, map[string]any{
		"promotion_code":      strings.TrimSpace(in.PromotionCode),
		"description":         strings.TrimSpace(in.Description),
		"start_date":          start,
		"end_date":            end,
		"discount_percentage": in.DiscountPercentage,
		"image_url":           strings.TrimSpace(in.ImageURL),
		"updated_at":          time.Now().UTC(),
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrCodeExists
		}
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	promotionID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, promotionID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func dateRange(in domain.Input) (time.Time, time.Time, error) {
	start, err := domain.ParseDate(in.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDate
	}
	end, err := domain.ParseDate(in.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDate
	}
	return start, end, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toResponse(p *domain.Promotion) domain.Response {
	return domain.Response{
		ID:                 p.ID.String(),
		PromotionCode:      p.PromotionCode,
		Description:        p.Description,
		StartDate:          p.StartDate.UTC().Format(domain.DateLayout),
		EndDate:            p.EndDate.UTC().Format(domain.DateLayout),
		DiscountPercentage: p.DiscountPercentage,
		ImageURL:           p.ImageURL,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
