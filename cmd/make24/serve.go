package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"svw.info/make24/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP game server",
	Long:  `Serves the game page, the JSON API under /api and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("storage") {
			cfg.Storage.Backend, _ = cmd.Flags().GetString("storage")
		}
		if cmd.Flags().Changed("persist-path") {
			cfg.Storage.Path, _ = cmd.Flags().GetString("persist-path")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, closer, err := openStorage(cfg.Storage, logger)
		if err != nil {
			return err
		}
		defer closer.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		svc := newService(cfg, st, metrics.New(reg), logger)

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           newRouter(cfg, svc, reg, logger),
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", cfg.Server.Addr, "storage", cfg.Storage.Backend, "path", cfg.Storage.Path)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "err", err)
				return srv.Close()
			}
			logger.Info("server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address (overrides config)")
	serveCmd.Flags().String("storage", "fs", "round store: fs|redis|badger (overrides config)")
	serveCmd.Flags().String("persist-path", "./data", "directory for the fs and badger stores (overrides config)")
}
