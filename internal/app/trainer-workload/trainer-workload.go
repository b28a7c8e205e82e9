// Package trainerworkload собирает сервис учёта нагрузки тренеров:
// хранилище, кеш, диспетчер заявок, HTTP-сервер и консьюмер очереди заявок.
package trainerworkload

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/trainer-workload/internal/cache"
	"github.com/magabrotheeeer/trainer-workload/internal/config"
	"github.com/magabrotheeeer/trainer-workload/internal/lib/jwt"
	"github.com/magabrotheeeer/trainer-workload/internal/migrations"
	"github.com/magabrotheeeer/trainer-workload/internal/rabbitmq"
	dispatchservice "github.com/magabrotheeeer/trainer-workload/internal/services/dispatch"
	workloadservice "github.com/magabrotheeeer/trainer-workload/internal/services/workload"
	"github.com/magabrotheeeer/trainer-workload/internal/storage/repository"
)

type App struct {
	server      *http.Server
	logger      *slog.Logger
	db          *repository.Storage
	amqpConn    *amqp.Connection
	amqpChannel *amqp.Channel
	dispatcher  *dispatchservice.Dispatcher
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	workloadService := workloadservice.NewWorkloadService(db, cacheRedis, logger)
	dispatcher := dispatchservice.New(workloadService, logger)

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	amqpChannel, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetTrainingQueues())
	if err != nil {
		return nil, err
	}

	maker := jwt.NewMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, dispatcher, workloadService, maker)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:      srv,
		logger:      logger,
		db:          db,
		amqpConn:    amqpConn,
		amqpChannel: amqpChannel,
		dispatcher:  dispatcher,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	handler := rabbitmq.NewTrainingHandler(a.logger, a.dispatcher)
	for _, q := range rabbitmq.GetTrainingQueues() {
		if err := rabbitmq.ConsumerMessage(ctx, a.amqpChannel, q.QueueName, handler); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.amqpChannel.Close(); closeErr != nil {
			a.logger.Error("failed to close amqp channel", slog.Any("err", closeErr))
		}
		if closeErr := a.amqpConn.Close(); closeErr != nil {
			a.logger.Error("failed to close amqp connection", slog.Any("err", closeErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
