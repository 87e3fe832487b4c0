package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"tableside/internal/auth"
	"tableside/internal/broadcast"
	"tableside/internal/config"
	"tableside/internal/connections/database"
	"tableside/internal/connections/rabbitmq"
	"tableside/internal/httpx"
	"tableside/internal/logger"
	"tableside/internal/repository"
	"tableside/internal/repository/memory"
	"tableside/internal/repository/postgres"
	"tableside/internal/server"
	"tableside/internal/service/checkout"
	"tableside/internal/service/menu"
	"tableside/internal/service/order"
	"tableside/internal/service/session"
)

func main() {
	lg := logger.New("tableside")

	cfg, err := config.Load()
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var store repository.Store
	if cfg.UseDatabase() {
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			lg.Error("db_connect_failed", err, nil)
			os.Exit(1)
		}
		defer db.Close()
		store = postgres.New(db)
		lg.Info("database_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Database})
	} else {
		store = memory.New()
		if err := seed(ctx, store); err != nil {
			lg.Error("seed_failed", err, nil)
			os.Exit(1)
		}
		lg.Info("memory_backend_selected", nil)
	}

	hub := broadcast.NewHub()
	var pub broadcast.Publisher = hub

	g, ctx := errgroup.WithContext(ctx)

	if cfg.UseBroker() {
		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			lg.Error("rabbitmq_connect_failed", err, nil)
			os.Exit(1)
		}
		defer rmq.Close()
		if err := rmq.DeclareTopology(); err != nil {
			lg.Error("rabbitmq_declare_failed", err, nil)
			os.Exit(1)
		}
		// The broker carries the events; the relay feeds them back
		// into this process for its websocket clients.
		pub = broadcast.NewAMQP(rmq)
		relay := broadcast.NewRelay(rmq, hub, lg)
		g.Go(func() error { return relay.Run(ctx) })
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host})
	}

	ledger := session.NewLedger(store.Sessions)
	orderSvc := order.NewService(store.Orders, ledger, pub, lg)
	checkoutSvc := checkout.NewCoordinator(store.Orders, ledger, pub, lg)
	menuSvc := menu.NewService(store.Menu)
	guard := auth.NewService(store.Users, auth.NewRegistry(), lg)

	handlers := server.NewHandlers(guard, orderSvc, checkoutSvc, menuSvc, ledger, hub, lg)
	srv := httpx.New(fmt.Sprintf(":%d", cfg.Port), handlers.Router())

	lg.Info("service_started", map[string]any{"port": cfg.Port})
	g.Go(func() error { return srv.Run(ctx) })

	if err := g.Wait(); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
}
