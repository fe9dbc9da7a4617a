package authgw

import (
	"context"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"

	"github.com/aurumlab/goldtrade/internal/config"
)

// Module wires the auth gateway client, cached when redis is configured.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newClient(p clientParams) (Client, error) {
	httpClient, err := NewHTTPClient(p.Config.AuthServiceAddress, p.Logger)
	if err != nil {
		return nil, err
	}

	if p.Config.RedisAddress == "" {
		return httpClient, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return rdb.Close()
		},
	})
	return NewCachedClient(httpClient, rdb, p.Config.TokenCacheTTL, p.Logger), nil
}
