package internal

import (
	"context"

	"shop_companion/internal/cli"
	"shop_companion/internal/config"
	"shop_companion/internal/logging"
	"shop_companion/internal/mapbridge"
	"shop_companion/internal/mapserver"
	"shop_companion/internal/shopapi"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *cli.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		shopapi.Module(),
		mapbridge.Module(),
		mapserver.Module(),
		cli.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}
