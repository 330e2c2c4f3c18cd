package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rockysnow7/cyoa"
	"github.com/rockysnow7/cyoa/internal/adapters/httpapi"
	"github.com/rockysnow7/cyoa/internal/config"
	"github.com/rockysnow7/cyoa/internal/logging"
	redisstore "github.com/rockysnow7/cyoa/pkg/adapters/redis"
	"github.com/rockysnow7/cyoa/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the story HTTP server",
	Long:  `Loads the story script and exposes reader sessions as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "Path to a YAML config file")
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	serveCmd.Flags().String("prefix", "", "Path prefix for API routes (overrides config)")
	serveCmd.Flags().Duration("session-timeout", 0, "Idle timeout for session expiry (overrides config)")
	serveCmd.Flags().Bool("strict", false, "Treat reference-lint findings as fatal")
}

func runServe(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("prefix"); v != "" {
		cfg.Prefix = v
	}
	if v, _ := cmd.Flags().GetDuration("session-timeout"); v != 0 {
		cfg.SessionTimeout = config.Duration(v)
	}
	strict, _ := cmd.Flags().GetBool("strict")

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level)

	source, err := loadSource(cmd)
	if err != nil {
		return err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	eng, err := cyoa.New(source,
		cyoa.WithLogger(logger),
		cyoa.WithStore(store),
		cyoa.WithStrict(strict),
	)
	if err != nil {
		return fmt.Errorf("failed to load story: %w", err)
	}

	handler := httpapi.NewHandler(eng,
		httpapi.WithLogger(logger),
		httpapi.WithPrefix(cfg.Prefix),
		httpapi.WithSessionTimeout(cfg.SessionTimeout.Std()),
		httpapi.WithMetrics(prometheus.NewRegistry()),
	)

	// Bind first so the chosen port is known before serving. ":0" asks the
	// kernel for any free port.
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	if cfg.PortFile != "" {
		if err := writePortFile(cfg.PortFile, port); err != nil {
			return err
		}
	}

	srv := &http.Server{Handler: handler}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server listening", "addr", ln.Addr().String(), "port", port)
		serverErrors <- srv.Serve(ln)
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}
		}
		logger.Info("server stopped")
	}
	return nil
}

func buildStore(cfg config.Config) (session.Store, error) {
	switch cfg.Store {
	case "", "memory":
		return nil, nil // engine falls back to the in-memory store
	case "redis":
		var opts []redisstore.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redisstore.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL != 0 {
			opts = append(opts, redisstore.WithTTL(cfg.Redis.TTL.Std()))
		}
		return redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func writePortFile(path string, port int) error {
	data, err := json.Marshal(map[string]int{"port": port})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write port file: %w", err)
	}
	return nil
}
