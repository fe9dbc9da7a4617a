package di

import (
	"go.uber.org/fx"

	"github.com/aurumlab/goldtrade/internal/adapter/authgw"
	"github.com/aurumlab/goldtrade/internal/adapter/events"
	"github.com/aurumlab/goldtrade/internal/app"
	"github.com/aurumlab/goldtrade/internal/config"
	"github.com/aurumlab/goldtrade/internal/logger"
	"github.com/aurumlab/goldtrade/internal/server/http/handlers"
	"github.com/aurumlab/goldtrade/internal/server/http/router"
	"github.com/aurumlab/goldtrade/internal/storage/postgres"
	"github.com/aurumlab/goldtrade/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		authgw.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(f *app.TradingFacade) handlers.TradingFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
