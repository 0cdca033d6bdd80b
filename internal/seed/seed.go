package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	"github.com/smallbiznis/backoffice/internal/auth/password"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	"github.com/smallbiznis/backoffice/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Bootstrap seeds the first admin user and a default category. Both steps
// are idempotent and skipped when not configured.
func Bootstrap(ctx context.Context, db *gorm.DB, node *snowflake.Node, cfg config.BootstrapConfig, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := ensureAdmin(ctx, tx, node, cfg)
		if err != nil {
			return err
		}
		if created {
			log.Info("bootstrap admin created", zap.String("email", strings.ToLower(cfg.AdminEmail)))
		}

		created, err = ensureCategory(ctx, tx, node, cfg.DefaultCategory)
		if err != nil {
			return err
		}
		if created {
			log.Info("default category created", zap.String("name", cfg.DefaultCategory))
		}
		return nil
	})
}

func ensureAdmin(ctx context.Context, tx *gorm.DB, node *snowflake.Node, cfg config.BootstrapConfig) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	var user authdomain.User
	err := tx.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := password.Hash(cfg.AdminPassword)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	user = authdomain.User{
		ID:           node.Generate(),
		Email:        email,
		DisplayName:  strings.TrimSpace(cfg.AdminName),
		PasswordHash: &hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}

func ensureCategory(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&categorydomain.Category{}).Where("name_en = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	category := categorydomain.Category{
		ID:        node.Generate(),
		NameEn:    name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
		return false, err
	}
	return true, nil
}
