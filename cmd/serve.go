package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/channels"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/fulfillment"
	httpapi "github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/http"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, chat webhooks and the optional AMQP consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.close(context.Background()) }()
	logger := a.logger

	// --- AMQP ---
	var (
		conn      *amqp.Connection
		publisher *events.Publisher
		orchOpts  []fulfillment.Option
	)
	if a.cfg.RabbitMQ.URL.IsSet() {
		conn, err = amqp.Dial(a.cfg.RabbitMQ.URL.Value())
		if err != nil {
			return fmt.Errorf("connect to RabbitMQ: %w", err)
		}
		defer conn.Close()

		pubCh, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("open publisher channel: %w", err)
		}
		publisher, err = events.NewPublisher(pubCh, events.PublisherOptions{Logger: logger})
		if err != nil {
			return err
		}
		defer publisher.Close()
		orchOpts = append(orchOpts, fulfillment.WithNotifier(publisher))
	} else {
		logger.Info("rabbitmq url not set; events disabled")
	}

	orch := a.orchestrator(orchOpts...)

	// --- HTTP ---
	telegram, err := channels.NewTelegram(a.cfg.TelegramConfig(), nil)
	if err != nil {
		return err
	}
	whatsapp, err := channels.NewWhatsApp(a.cfg.WhatsAppConfig(), nil)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Handler: httpapi.NewHandler(orch, logger),
		Webhooks: httpapi.NewWebhookHandler(httpapi.WebhookDeps{
			Processor:           orch,
			Telegram:            telegram,
			WhatsApp:            whatsapp,
			WhatsAppVerifyToken: a.cfg.WhatsApp.VerifyToken.Value(),
			Logger:              logger,
		}),
		Gatherer: a.registry,
		Logger:   logger,
	})

	addr := a.cfg.HTTP.ListenAddr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	var consumer *events.Consumer
	if conn != nil {
		consCh, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("open consumer channel: %w", err)
		}
		consumer, err = events.NewProcurementRequestedConsumer(consCh, events.ProcurementRequestedHandler(orch, publisher, logger), logger)
		if err != nil {
			return fmt.Errorf("start consumer: %w", err)
		}
		defer consumer.Close()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if consumer != nil {
		g.Go(func() error { return consumer.Run(gctx) })
	}

	// --- graceful shutdown ---
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("serve stopped with error", zap.Error(err))
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
