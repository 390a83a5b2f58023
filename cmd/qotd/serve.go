package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/papapumpkin/qotd/internal/config"
	"github.com/papapumpkin/qotd/internal/logging"
	"github.com/papapumpkin/qotd/internal/selector"
	"github.com/papapumpkin/qotd/internal/server"
	"github.com/papapumpkin/qotd/internal/supervisor"
	"github.com/spf13/cobra"
)

func runServe(_ *cobra.Command, _ []string) error {
	log := logging.Default()

	cfg, applied, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Str("config", configPath).Msg("qotd: failed to load configuration")
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("qotd: configuration invalid")
		return err
	}
	for _, a := range applied {
		log.Info().Str("key", a.Key).Interface("value", a.Value).Msg("qotd: applied default configuration value")
	}

	srv, err := server.Bind(cfg.Server.Host, cfg.Server.TCPPort, cfg.Server.UDPPort, log)
	if err != nil {
		log.Error().Err(err).Msg("qotd: failed to bind listeners")
		return err
	}
	defer srv.Close()

	log.Info().
		Str("host", cfg.Server.Host).
		Int("tcp_port", cfg.Server.TCPPort).
		Int("udp_port", cfg.Server.UDPPort).
		Strs("directories", cfg.Quotes.Directories).
		Str("mode", cfg.Quotes.Mode).
		Msg("qotd: configuration loaded")

	mode := selector.ParseMode(cfg.Quotes.Mode)
	interval := time.Duration(cfg.Polling.IntervalSeconds) * time.Second
	sup := supervisor.New(srv, cfg.Quotes.Directories, mode, interval, log)

	ctx, cancel := setupSignalContext()
	defer cancel()

	done := make(chan struct{})
	go func() {
		sup.Run()
		close(done)
	}()

	<-ctx.Done()
	log.Info().Msg("qotd: shutdown signal received, stopping")
	sup.Stop()
	<-done
	log.Info().Msg("qotd: stopped")

	return nil
}

// setupSignalContext returns a context canceled on SIGINT or SIGTERM.
func setupSignalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}
