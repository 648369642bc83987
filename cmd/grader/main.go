package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mini-maxit/grader/internal/api"
	"github.com/mini-maxit/grader/internal/config"
	"github.com/mini-maxit/grader/internal/grader"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/rabbitmq"
	"github.com/mini-maxit/grader/internal/rabbitmq/channel"
	"github.com/mini-maxit/grader/internal/rabbitmq/consumer"
	"github.com/mini-maxit/grader/internal/rabbitmq/responder"
	"github.com/mini-maxit/grader/internal/runner"
	"github.com/mini-maxit/grader/internal/scheduler"
	"github.com/mini-maxit/grader/internal/stages/verifier"
	"github.com/mini-maxit/grader/pkg/constants"
)

func main() {
	logger := logger.NewNamedLogger("main")
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.NewConfig()
	if !cfg.RabbitMQEnabled && !cfg.HTTPEnabled {
		logger.Fatal("Both RABBITMQ_ENABLED and HTTP_ENABLED are false, nothing to serve")
	}

	runners := runner.NewRunners(runner.NewOptions(cfg.Toolchain))
	gr := grader.NewGrader(runners, verifier.NewVerifier())

	var wg sync.WaitGroup
	var resp responder.Responder
	var consumeChannel, publishChannel channel.Channel

	if cfg.RabbitMQEnabled {
		conn := rabbitmq.NewRabbitMqConnection(cfg)
		defer func() {
			if err := conn.Close(); err != nil {
				logger.Errorf("Failed to close RabbitMQ connection: %s", err)
			}
		}()

		consumeChannel = rabbitmq.NewRabbitMQChannel(conn)
		publishChannel = rabbitmq.NewRabbitMQChannel(conn)
		resp = responder.NewResponder(publishChannel, constants.DefaultRabbitmqPublishChanSize)
	}

	sched := scheduler.NewScheduler(cfg.MaxWorkers, gr, resp)

	if cfg.RabbitMQEnabled {
		cons := consumer.NewConsumer(consumeChannel, cfg.ConsumeQueueName, sched, resp)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := cons.Listen(ctx); err != nil {
				logger.Errorf("Consumer stopped: %s", err)
				stop()
			}
		}()
	}

	if cfg.HTTPEnabled {
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.NewServer(sched).Handler(),
			ReadHeaderTimeout: constants.HTTPReadHeaderTimeout * time.Second,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Infof("HTTP server listening on %s", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("HTTP server failed: %s", err)
				stop()
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.HTTPShutdownTimeout*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Errorf("HTTP server shutdown: %s", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	wg.Wait()
	sched.Wait()

	if resp != nil {
		if err := resp.Close(); err != nil {
			logger.Errorf("Failed to close responder: %s", err)
		}
		for _, ch := range []channel.Channel{consumeChannel, publishChannel} {
			if err := ch.Close(); err != nil {
				logger.Errorf("Failed to close RabbitMQ channel: %s", err)
			}
		}
	}

	logger.Info("Grader stopped")
}
