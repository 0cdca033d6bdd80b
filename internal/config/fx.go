package config

import (
	"github.com/smallbiznis/backoffice/pkg/db"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewCatalogConfigHolder),
	fx.Provide(func(cfg Config) db.Config { return cfg.Database() }),
)
