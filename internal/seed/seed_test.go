package seed

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	"github.com/smallbiznis/backoffice/internal/auth/password"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&authdomain.User{}, &categorydomain.Category{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return conn, node
}

func TestBootstrapIsIdempotent(t *testing.T) {
	conn, node := setup(t)
	cfg := config.BootstrapConfig{
		AdminEmail:      "Admin@Example.com",
		AdminPassword:   "correct-horse",
		AdminName:       "Admin",
		DefaultCategory: "General",
	}

	for i := 0; i < 2; i++ {
		require.NoError(t, Bootstrap(context.Background(), conn, node, cfg, zap.NewNop()))
	}

	var users []authdomain.User
	require.NoError(t, conn.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
	require.NotNil(t, users[0].PasswordHash)

	assert.True(t, password.Verify("correct-horse", *users[0].PasswordHash))

	var categories int64
	require.NoError(t, conn.Model(&categorydomain.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(1), categories)
}

func TestBootstrapSkipsWhenUnconfigured(t *testing.T) {
	conn, node := setup(t)

	require.NoError(t, Bootstrap(context.Background(), conn, node, config.BootstrapConfig{AdminEmail: "admin@example.com"}, zap.NewNop()))

	var users int64
	require.NoError(t, conn.Model(&authdomain.User{}).Count(&users).Error)
	assert.Zero(t, users)
}
