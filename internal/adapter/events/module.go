package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/aurumlab/goldtrade/internal/config"
)

// Module wires the event publisher; a noop stands in without a broker.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newPublisher(p publisherParams) Publisher {
	if p.Config.EventBrokerAddress == "" {
		return NoopPublisher{}
	}

	publisher := NewKafkaPublisher(p.Config.EventBrokerAddress, p.Config.EventTopic, p.Logger)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
