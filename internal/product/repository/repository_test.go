package repository

import (
	"context"
	"testing"

	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	"github.com/smallbiznis/backoffice/internal/product/domain"
	"github.com/smallbiznis/backoffice/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&categorydomain.Category{}, &domain.Product{}, &domain.CodeSequence{}))
	return conn
}

func nextCode(t *testing.T, conn *gorm.DB, r domain.Repository) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = r.NextCodeNumber(context.Background(), tx)
		return err
	}))
	return n
}

func TestNextCodeNumberStartsAtOne(t *testing.T) {
	conn := newTestDB(t)
	r := Provide()

	assert.Equal(t, int64(1), nextCode(t, conn, r))
	assert.Equal(t, int64(2), nextCode(t, conn, r))
	assert.Equal(t, int64(3), nextCode(t, conn, r))
}

func TestNextCodeNumberSeedsFromHighestCode(t *testing.T) {
	conn := newTestDB(t)
	r := Provide()

	require.NoError(t, conn.Create(&domain.Product{ID: 1, ProductCode: "P0042", NameEn: "a", CategoryID: 1}).Error)
	require.NoError(t, conn.Create(&domain.Product{ID: 2, ProductCode: "P0007", NameEn: "b", CategoryID: 1}).Error)

	assert.Equal(t, int64(43), nextCode(t, conn, r))
}

func TestNextCodeNumberRollsBackWithTransaction(t *testing.T) {
	conn := newTestDB(t)
	r := Provide()

	assert.Equal(t, int64(1), nextCode(t, conn, r))

	err := conn.Transaction(func(tx *gorm.DB) error {
		_, err := r.NextCodeNumber(context.Background(), tx)
		require.NoError(t, err)
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, int64(2), nextCode(t, conn, r))
}

func TestSyncCodeSequenceSkipsTakenCodes(t *testing.T) {
	conn := newTestDB(t)
	r := Provide()
	ctx := context.Background()

	assert.Equal(t, int64(1), nextCode(t, conn, r))
	require.NoError(t, conn.Create(&domain.Product{ID: 5, ProductCode: "P0010", NameEn: "manual", CategoryID: 1}).Error)

	require.NoError(t, r.SyncCodeSequence(ctx, conn))
	assert.Equal(t, int64(11), nextCode(t, conn, r))
}

func TestHighestCodeNumberOrdersByWidth(t *testing.T) {
	conn := newTestDB(t)
	r := &repo{}

	require.NoError(t, conn.Create(&domain.Product{ID: 1, ProductCode: "P9999", NameEn: "a", CategoryID: 1}).Error)
	require.NoError(t, conn.Create(&domain.Product{ID: 2, ProductCode: "P10000", NameEn: "b", CategoryID: 1}).Error)

	n, err := r.highestCodeNumber(context.Background(), conn)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), n)
}
