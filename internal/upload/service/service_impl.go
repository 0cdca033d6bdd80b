package service

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/observability/metrics"
	"github.com/smallbiznis/backoffice/internal/upload/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	defaultMaxBytes = 5 << 20
	defaultBaseName = "image"
	maxBaseNameLen  = 48

	outcomeStored   = "stored"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	Store   domain.Store
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log           *zap.Logger
	store         domain.Store
	metrics       *metrics.Metrics
	maxBytes      int64
	publicBaseURL string
}

func New(p Params) domain.Service {
	maxBytes := p.Config.Upload.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Service{
		log:           p.Log.Named("upload.service"),
		store:         p.Store,
		metrics:       p.Metrics,
		maxBytes:      maxBytes,
		publicBaseURL: strings.TrimRight(p.Config.Upload.PublicBaseURL, "/"),
	}
}

// Upload accepts a single image, sniffing the content rather than trusting
// the client supplied name or header.
func (s *Service) Upload(ctx context.Context, req domain.UploadRequest) (*domain.Result, error) {
	if req.Body == nil {
		return nil, domain.ErrEmptyFile
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(req.Body, s.maxBytes+1))
	if err != nil {
		s.metrics.RecordUpload(ctx, "unknown", outcomeFailed, 0)
		return nil, err
	}
	if n == 0 {
		s.metrics.RecordUpload(ctx, "unknown", outcomeRejected, 0)
		return nil, domain.ErrEmptyFile
	}
	if n > s.maxBytes {
		s.metrics.RecordUpload(ctx, "unknown", outcomeRejected, n)
		return nil, domain.ErrTooLarge
	}

	mt := mimetype.Detect(buf.Bytes())
	contentType := mt.String()
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	if !domain.Allowed(contentType) {
		s.metrics.RecordUpload(ctx, contentType, outcomeRejected, n)
		return nil, domain.ErrUnsupportedType
	}

	key := objectKey(req.Filename, mt.Extension())
	urlPath, err := s.store.Put(ctx, key, &buf)
	if err != nil {
		s.metrics.RecordUpload(ctx, contentType, outcomeFailed, n)
		s.log.Error("failed to store upload", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	s.metrics.RecordUpload(ctx, contentType, outcomeStored, n)

	url := s.publicBaseURL + urlPath
	return &domain.Result{
		Key:         key,
		URL:         url,
		SecureURL:   secureURL(url),
		ContentType: contentType,
		Size:        n,
	}, nil
}

func objectKey(filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := slug.Make(base)
	if len(name) > maxBaseNameLen {
		name = strings.Trim(name[:maxBaseNameLen], "-")
	}
	if name == "" || name == "." {
		name = defaultBaseName
	}
	return name + "-" + strings.ToLower(ulid.Make().String()) + ext
}

func secureURL(url string) string {
	if strings.HasPrefix(url, "http://") {
		return "https://" + strings.TrimPrefix(url, "http://")
	}
	return url
}
