package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/customer/domain"
	"github.com/smallbiznis/backoffice/internal/customer/repository"
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
	if err := dbConn.AutoMigrate(&domain.Customer{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(Params{DB: dbConn, Log: zap.NewNop(), GenID: node, Repo: repository.Provide()})
}

func TestUpdateThenGetRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{CustomerInput: domain.CustomerInput{
		FirstName: "Old", LastName: "Name", Email: "old@example.com", Phone: "999", Address: "Somewhere",
	}})
	require.NoError(t, err)

	input := domain.CustomerInput{FirstName: "A", LastName: "B", Email: "a@b.com", Phone: "123", Address: "X"}
	_, err = svc.Update(ctx, domain.UpdateCustomerRequest{ID: created.ID, CustomerInput: input})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, input, domain.CustomerInput{
		FirstName: got.FirstName,
		LastName:  got.LastName,
		Email:     got.Email,
		Phone:     got.Phone,
		Address:   got.Address,
	})
}

func TestUpdateOverwritesWithBlanks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{CustomerInput: domain.CustomerInput{
		FirstName: "Sok", Phone: "012",
	}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateCustomerRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "", updated.FirstName)
	assert.Equal(t, "", updated.Phone)
}

func TestGetMissingCustomer(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), "424242")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "forty-two")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestDeleteMissingLeavesRows(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{CustomerInput: domain.CustomerInput{FirstName: "Keep"}})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "1"), domain.ErrNotFound)

	res, err := svc.List(ctx, domain.ListCustomerRequest{Page: pagination.Page{PageSize: 10, CurrentPage: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
}

func TestCreateRejectsInvalidEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{CustomerInput: domain.CustomerInput{Email: "not-an-email"}})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, in := range []domain.CustomerInput{
		{FirstName: "Dara", Email: "dara@example.com"},
		{FirstName: "Sophea", Email: "sophea@example.com"},
		{FirstName: "Darith", Email: "darith@example.com"},
	} {
		_, err := svc.Create(ctx, domain.CreateCustomerRequest{CustomerInput: in})
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, domain.ListCustomerRequest{Page: pagination.Page{PageSize: 10, CurrentPage: 1}, Name: "dar"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = svc.List(ctx, domain.ListCustomerRequest{Page: pagination.Page{PageSize: 10, CurrentPage: 1}, Email: "SOPHEA@example.com"})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Sophea", res.Records[0].FirstName)
}
