package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	auditdomain "github.com/smallbiznis/backoffice/internal/audit/domain"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	customerdomain "github.com/smallbiznis/backoffice/internal/customer/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	promotiondomain "github.com/smallbiznis/backoffice/internal/promotion/domain"
	"github.com/smallbiznis/backoffice/pkg/db"
	"gorm.io/gorm"
)

const migrationsDir = "sql"

//go:embed sql/*.sql
var embeddedMigrations embed.FS

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&authdomain.User{},
		&authdomain.Session{},
		&categorydomain.Category{},
		&productdomain.Product{},
		&productdomain.CodeSequence{},
		&customerdomain.Customer{},
		&promotiondomain.Promotion{},
		&auditdomain.AuditLog{},
	}
}

// Run brings the schema up to date. Postgres uses the versioned SQL files;
// other dialects fall back to gorm's AutoMigrate.
func Run(conn *gorm.DB, cfg db.Config) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case db.TypePostgres, "":
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	default:
		if err := conn.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Closing the migrator would close the shared *sql.DB.

	return nil
}
