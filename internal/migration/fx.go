package migration

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/seed"
	"github.com/smallbiznis/backoffice/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, dbCfg db.Config, cfg config.Config, node *snowflake.Node, log *zap.Logger) error {
		if err := Run(conn, dbCfg); err != nil {
			return err
		}
		return seed.Bootstrap(context.Background(), conn, node, cfg.Bootstrap, log)
	}),
)
