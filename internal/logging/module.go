package logging

import (
	"context"
	"os"

	"shop_companion/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is registered at the root scope so the file tee decorates the
// logger every other module receives.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(func(cfg config.Config) (*os.File, error) {
			return OpenLogFile(cfg.LogFile)
		}),
		fx.Decorate(func(base *zap.Logger, cfg config.Config, file *os.File) *zap.Logger {
			return TeeToFile(base, file, cfg.Debug)
		}),
		fx.Invoke(func(lc fx.Lifecycle, file *os.File, logger *zap.Logger) {
			if file == nil {
				return
			}
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					_ = logger.Sync()
					return file.Close()
				},
			})
		}),
	)
}
