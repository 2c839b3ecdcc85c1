package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kontrakt/internal/config"
	"kontrakt/internal/server"
	"kontrakt/internal/util"
)

var (
	servePort int
	serveDev  bool
)

// serveCmd starts the local HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local import server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Warn("config load failed, using defaults", zap.Error(err))
			cfg = config.DefaultConfig()
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}
		if serveDev {
			cfg.Server.DevMode = true
		}

		srv, err := server.NewServer(cfg, logger)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		defer srv.Close()

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening", zap.String("addr", addr))
			errCh <- srv.Run(addr)
		}()

		if !cfg.Server.DevMode {
			if err := util.OpenBrowserWithFallback(url); err != nil {
				logger.Info("open the UI manually", zap.String("url", url))
			}
		} else {
			logger.Info("dev mode", zap.String("url", url))
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-quit:
			logger.Info("shutting down")
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config.toml)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "dev mode, do not open the browser")
}
