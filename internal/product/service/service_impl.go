package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/authctx"
	"github.com/smallbiznis/backoffice/internal/observability/metrics"
	"github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/pkg/db"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCodeAttempts = 5

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Locker  domain.CodeLocker `optional:"true"`
	Metrics *metrics.Metrics  `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	genID   *snowflake.Node
	locker  domain.CodeLocker
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("product.service"),
		repo:    p.Repo,
		genID:   p.GenID,
		locker:  p.Locker,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (pagination.Result[domain.Response], error) {
	filter := domain.ListFilter{Query: strings.TrimSpace(req.Query)}
	if raw := strings.TrimSpace(req.CategoryID); raw != "" {
		categoryID, err := snowflake.ParseString(raw)
		if err != nil {
			return pagination.Result[domain.Response]{}, domain.ErrInvalidCategory
		}
		filter.CategoryID = categoryID
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

// Create requires an authenticated actor on ctx. The product code is drawn
// from the sequence inside the insert transaction and retried when another
// writer already holds the code.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	actor, ok := authctx.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	nameEn := strings.TrimSpace(req.NameEn)
	if nameEn == "" {
		return nil, domain.ErrInvalidName
	}
	categoryID, err := s.resolveCategory(ctx, req.CategoryID.String())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	createdBy := actor.UserID
	p := &domain.Product{
		ID:         s.genID.Generate(),
		NameEn:     nameEn,
		NameKh:     strings.TrimSpace(req.NameKh),
		CategoryID: categoryID,
		SKU:        strings.TrimSpace(req.SKU),
		ImageURL:   imageURL(req.Image, req.ImageURL),
		CreatedBy:  &createdBy,
		UpdatedBy:  &createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	release, err := s.acquireCodeLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	for attempt := 1; ; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			n, err := s.repo.NextCodeNumber(ctx, tx)
			if err != nil {
				return err
			}
			p.ProductCode = domain.FormatCode(n)
			return s.repo.Insert(ctx, tx, p)
		})
		if err == nil {
			break
		}
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}
		if attempt >= maxCodeAttempts {
			s.log.Error("product code allocation exhausted retries",
				zap.Int("attempts", attempt),
				zap.String("last_code", p.ProductCode),
			)
			return nil, domain.ErrCodeConflict
		}

		s.metrics.RecordProductCodeRetry(ctx)
		s.log.Warn("product code collision, retrying",
			zap.Int("attempt", attempt),
			zap.String("code", p.ProductCode),
		)
		if err := s.repo.SyncCodeSequence(ctx, s.db); err != nil {
			return nil, err
		}
	}

	s.metrics.RecordProductCreated(ctx)
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

// Update overwrites every editable field with the request values. The
// product code is never rewritten.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	nameEn := strings.TrimSpace(req.NameEn)
	if nameEn == "" {
		return nil, domain.ErrInvalidName
	}
	categoryID, err := s.resolveCategory(ctx, req.CategoryID.String())
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name_en":     nameEn,
		"name_kh":     strings.TrimSpace(req.NameKh),
		"category_id": categoryID,
		"sku":         strings.TrimSpace(req.SKU),
		"image_url":   imageURL(req.Image, req.ImageURL),
		"updated_at":  time.Now().UTC(),
	}
	if actor, ok := authctx.ActorFromContext(ctx); ok {
		fields["updated_by"] = actor.UserID
	}

	affected, err := s.repo.Update(ctx, s.db, productID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return s.Get(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) resolveCategory(ctx context.Context, raw string) (snowflake.ID, error) {
	categoryID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || categoryID <= 0 {
		return 0, domain.ErrInvalidCategory
	}

	exists, err := s.repo.CategoryExists(ctx, s.db, categoryID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrCategoryNotFound
	}
	return categoryID, nil
}

func (s *Service) acquireCodeLock(ctx context.Context) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return release, nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func imageURL(candidates ...*string) *string {
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		if value := strings.TrimSpace(*candidate); value != "" {
			return &value
		}
	}
	return nil
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ID:          p.ID.String(),
		ProductCode: p.ProductCode,
		NameEn:      p.NameEn,
		NameKh:      p.NameKh,
		CategoryID:  p.CategoryID.String(),
		SKU:         p.SKU,
		ImageURL:    p.ImageURL,
		CreatedBy:   idString(p.CreatedBy),
		UpdatedBy:   idString(p.UpdatedBy),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func idString(id *snowflake.ID) *string {
	if id == nil || *id == 0 {
		return nil
	}
	value := id.String()
	return &value
}
