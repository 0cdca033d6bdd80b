package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/promotion/domain"
	"github.com/smallbiznis/backoffice/internal/promotion/repository"
	"github.com/smallbiznis/backoffice/pkg/db"
	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.Promotion{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(Params{DB: dbConn, Log: zap.NewNop(), GenID: node, Repo: repository.Provide()})
}

func input(code string) domain.Input {
	return domain.Input{
		PromotionCode:      code,
		Description:        "Seasonal discount",
		StartDate:          "2026-06-01",
		EndDate:            "2026-06-30",
		DiscountPercentage: 20,
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, input("JUNE"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "JUNE", got.PromotionCode)
	assert.Equal(t, "2026-06-01", got.StartDate)
	assert.Equal(t, "2026-06-30", got.EndDate)
	assert.Equal(t, float64(20), got.DiscountPercentage)
}

func TestCreateRejectsInvalidPromotion(t *testing.T) {
	svc := newTestService(t)

	in := input("BAD")
	in.StartDate = "2026-07-01"
	in.DiscountPercentage = 101

	_, err := svc.Create(context.Background(), in)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestCreateDuplicateCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, input("DUP"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, input("DUP"))
	assert.ErrorIs(t, err, domain.ErrCodeExists)
}

func TestUpdateRevalidatesAndOverwrites(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, input("SUMMER"))
	require.NoError(t, err)

	bad := input("SUMMER")
	bad.DiscountPercentage = 0
	_, err = svc.Update(ctx, created.ID, bad)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	next := input("SUMMER2")
	next.ImageURL = "https://cdn.example.com/summer.png"
	updated, err := svc.Update(ctx, created.ID, next)
	require.NoError(t, err)
	assert.Equal(t, "SUMMER2", updated.PromotionCode)
	assert.Equal(t, "https://cdn.example.com/summer.png", updated.ImageURL)

	_, err = svc.Update(ctx, "777", next)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAndMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, input("GONE"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListActiveOn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, input("JUNE"))
	require.NoError(t, err)

	july := input("JULY")
	july.StartDate, july.EndDate = "2026-07-01", "2026-07-31"
	_, err = svc.Create(ctx, july)
	require.NoError(t, err)

	page := pagination.Page{PageSize: 10, CurrentPage: 1}
	res, err := svc.List(ctx, domain.ListRequest{Page: page, ActiveOn: "2026-07-15"})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "JULY", res.Records[0].PromotionCode)

	res, err = svc.List(ctx, domain.ListRequest{Page: page})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	_, err = svc.List(ctx, domain.ListRequest{Page: page, ActiveOn: "someday"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
