package mapbridge

import (
	"shop_companion/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"mapbridge",
		fx.Provide(func(cfg config.Config, logger *zap.Logger) (*Bridge, error) {
			transport, err := ParseTransport(cfg.MapTransport)
			if err != nil {
				return nil, err
			}
			return NewBridge(transport, logger), nil
		}),
	)
}
