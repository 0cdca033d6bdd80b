package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/smallbiznis/backoffice/internal/audit/domain"
	"github.com/smallbiznis/backoffice/internal/audit/repository"
	"github.com/smallbiznis/backoffice/internal/authctx"
	obscontext "github.com/smallbiznis/backoffice/internal/observability/context"
	"github.com/smallbiznis/backoffice/pkg/db"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) auditdomain.Service {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&auditdomain.AuditLog{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{DB: conn, Log: zap.NewNop(), GenID: node, Repo: repository.Provide()})
}

func TestAuditLogCapturesRequestContext(t *testing.T) {
	svc := newTestService(t)

	ctx := authctx.WithActor(context.Background(), authctx.Actor{UserID: 11, SessionID: 12, Email: "ops@example.com"})
	ctx = authctx.WithClient(ctx, authctx.Client{IPAddress: "10.0.0.1", UserAgent: "test-agent"})
	ctx = obscontext.WithRequestID(ctx, "req-1")

	target := "42"
	require.NoError(t, svc.AuditLog(ctx, "product.create", auditdomain.TargetProduct, &target, map[string]any{"product_code": "P0001"}))

	res, err := svc.List(context.Background(), auditdomain.ListAuditLogRequest{Page: pagination.Page{PageSize: 10, CurrentPage: 1}})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	entry := res.Records[0]
	assert.Equal(t, "product.create", entry.Action)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, snowflake.ID(11), *entry.ActorID)
	assert.Equal(t, "ops@example.com", entry.ActorEmail)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "10.0.0.1", *entry.IPAddress)
	assert.Equal(t, "P0001", entry.Metadata["product_code"])
	assert.Equal(t, "req-1", entry.Metadata["request_id"])
}

func TestAuditLogRequiresAction(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, svc.AuditLog(context.Background(), " ", "product", nil, nil), auditdomain.ErrInvalidAction)
}

func TestListFiltersByTarget(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, b := "1", "2"
	require.NoError(t, svc.AuditLog(ctx, "customer.create", auditdomain.TargetCustomer, &a, nil))
	require.NoError(t, svc.AuditLog(ctx, "customer.update", auditdomain.TargetCustomer, &a, nil))
	require.NoError(t, svc.AuditLog(ctx, "customer.create", auditdomain.TargetCustomer, &b, nil))

	res, err := svc.List(ctx, auditdomain.ListAuditLogRequest{
		Page:       pagination.Page{PageSize: 10, CurrentPage: 1},
		TargetType: auditdomain.TargetCustomer,
		TargetID:   "1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = svc.List(ctx, auditdomain.ListAuditLogRequest{
		Page:   pagination.Page{PageSize: 10, CurrentPage: 1},
		Action: "customer.create",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
}
