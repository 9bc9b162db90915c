package mapserver

import (
	"shop_companion/internal/config"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"mapserver",
		fx.Provide(New),
		fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, s *Server) {
			if cfg.MapListenAddr == "" {
				return
			}
			lc.Append(fx.Hook{
				OnStart: s.Start,
				OnStop:  s.Shutdown,
			})
		}),
	)
}
