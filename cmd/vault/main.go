package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/rpc"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pyropy/vault/core/maidmanager"
	"github.com/pyropy/vault/core/routing"
	"github.com/pyropy/vault/core/vault"
	"github.com/pyropy/vault/lib/logger"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var log, _ = logger.New("vault")

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Run a vault node",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to TOML config file",
		},
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := vault.GetConfig(ctx.String("config"))
		if err != nil {
			log.Errorw("startup", "error", "config error")
			return err
		}

		return run(ctx.Context, cfg)
	},
}

func main() {
	app := &cli.App{
		Name:     "vault",
		Usage:    "Storage network vault node",
		Commands: []*cli.Command{serveCmd},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln("startup", "ERROR", err)
	}
}

func run(ctx context.Context, cfg *vault.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	self, err := cfg.NodeName()
	if err != nil {
		log.Errorw("startup", "error", "invalid node name")
		return err
	}

	store, err := cfg.OpenDatastore()
	if err != nil {
		log.Errorw("startup", "error", "failed to open account store", "path", cfg.Store.Path)
		return err
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	membership := routing.NewMembership(self, cfg.Routing.GroupSize)
	router := routing.NewGatewayRouter(cfg.Routing.GatewayAddr, membership, log.With("component", "router"))
	defer router.Close()

	maidManager := maidmanager.New(cfg.MaidManager(), router, store,
		maidmanager.WithLogger(log.With("persona", "maid-manager")),
		maidmanager.WithRegisterer(registry),
	)
	v := vault.New(maidManager, membership, log.With("component", "event-loop"))

	err = rpc.Register(NewVaultAPI(ctx, self, v))
	if err != nil {
		return err
	}
	rpc.HandleHTTP()

	if cfg.Metrics.Enabled {
		http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		log.Errorw("startup", "error", "net listen failed")
		return err
	}

	listenAddr := l.Addr().String()
	server := &http.Server{ReadHeaderTimeout: 10 * time.Second}

	log.Infow("startup", "status", "vault rpc server started", "address", listenAddr, "name", self.Short())
	defer log.Infow("shutdown", "status", "vault rpc server stopped", "address", listenAddr)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := server.Serve(l)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	})

	g.Go(func() error {
		return v.Run(ctx)
	})

	// Start reclaiming expired requests
	g.Go(func() error {
		v.StartSweeper(ctx, cfg.Cache.SweepInterval)
		return nil
	})

	// Start draining routing replies
	g.Go(func() error {
		router.Start(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Infow("shutdown", "status", "vault rpc server stopping", "address", listenAddr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
