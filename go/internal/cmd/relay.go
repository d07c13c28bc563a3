package main

import (
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mcdev12/grouporder/go/internal/realtime"
)

func newRelayCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Relay Postgres change notifications to NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.envFile)
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			natsCfg := realtime.DefaultNATSConfig()
			natsCfg.URL = cfg.Realtime.NATSURL
			nc, err := realtime.ConnectNATS(natsCfg)
			if err != nil {
				return err
			}
			defer nc.Close()

			jsCfg := realtime.DefaultJetStreamConfig()
			jsCfg.SubjectPrefix = cfg.Realtime.SubjectPrefix
			publisher, err := realtime.NewJetStreamPublisher(ctx, nc, jsCfg)
			if err != nil {
				return err
			}

			listener, err := realtime.NewListener(cfg.Database.DSN(), cfg.Realtime.NotifyChannel)
			if err != nil {
				return err
			}

			relayCfg := realtime.DefaultRelayConfig()
			relayCfg.NotifyChannel = cfg.Realtime.NotifyChannel
			relay := realtime.NewRelay(listener, publisher, relayCfg, clockwork.NewRealClock())

			mux := http.NewServeMux()
			mux.Handle("/health", realtime.NewRelayHealthChecker(relay, nc))
			health := &http.Server{
				Addr:              fmt.Sprintf(":%s", cfg.RelayPort),
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			healthDone := make(chan error, 1)
			go func() { healthDone <- serveUntilDone(ctx, health, cfg.ShutdownWait) }()

			log.Info().
				Str("channel", relayCfg.NotifyChannel).
				Str("stream", jsCfg.StreamName).
				Str("health_port", cfg.RelayPort).
				Msg("starting change relay")

			if err := relay.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				log.Error().Err(err).Msg("relay exited unexpectedly")
				return err
			}
			return <-healthDone
		},
	}
}
