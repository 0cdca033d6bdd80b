package promotion

import (
	"github.com/smallbiznis/backoffice/internal/promotion/repository"
	"github.com/smallbiznis/backoffice/internal/promotion/service"
	"go.uber.org/fx"
)

var Module = fx.Module("promotion.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
