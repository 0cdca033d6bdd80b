package upload

import (
	"github.com/smallbiznis/backoffice/internal/upload/disk"
	"github.com/smallbiznis/backoffice/internal/upload/service"
	"go.uber.org/fx"
)

var Module = fx.Module("upload.service",
	fx.Provide(disk.New),
	fx.Provide(service.New),
)
