package main

import (
	"context"
	"log/slog"
	"os"

	"jobboard/config"
	"jobboard/internal/delivery"
	"jobboard/internal/delivery/worker"
	"jobboard/internal/delivery/worker/handler"
	"jobboard/internal/infra/cache"
	logs "jobboard/internal/infra/log"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

// The worker receives job posted events, pushed over HTTP by Pub/Sub or read
// from the RabbitMQ queue, and keeps the shared listing cache coherent across
// API replicas.
func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			cache.NewJobCache,
			handler.NewPushHandler,
			handler.NewQueueHandler,
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewQueueConsumer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func startServer(params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(context.Background()); err != nil {
						params.Logger.Error("Failed to start worker", slog.Any("error", err))

						// Run the OnStop hooks before exiting
						if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
							params.Logger.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
							os.Exit(1)
						}
					}
				}()
			}

			return nil
		},
	})
}
