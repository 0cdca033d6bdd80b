package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/backoffice/pkg/db/pagination"
)

type ListAuditLogRequest struct {
	Page       pagination.Page
	Action     string
	TargetType string
	TargetID   string
}

type Service interface {
	// AuditLog records action against the target. The actor, client address
	// and request id are taken from ctx.
	AuditLog(ctx context.Context, action string, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, req ListAuditLogRequest) (pagination.Result[AuditLog], error)
}

var (
	ErrInvalidAction = errors.New("invalid_action")
)
