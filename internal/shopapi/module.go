package shopapi

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"shopapi",
		fx.Provide(NewClient),
	)
}
