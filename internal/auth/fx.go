package auth

import (
	"github.com/smallbiznis/backoffice/internal/auth/repository"
	"github.com/smallbiznis/backoffice/internal/auth/service"
	"github.com/smallbiznis/backoffice/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
