package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mcdev12/grouporder/go/internal/auth"
	"github.com/mcdev12/grouporder/go/internal/db"
	"github.com/mcdev12/grouporder/go/internal/participants"
	"github.com/mcdev12/grouporder/go/internal/realtime"
	"github.com/mcdev12/grouporder/go/internal/realtime/gateway"
)

func newGatewayCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gateway",
		Short: "Run the websocket gateway that pushes group change signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.envFile)
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pool, err := setupDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			clock := clockwork.NewRealClock()
			signer := auth.NewTokenSigner(cfg.Realtime.JWTSecret, cfg.Realtime.TokenTTL, clock)
			authApp := auth.NewApp(participants.NewRepository(db.New(pool)), signer)

			// Push is optional; without NATS every subscription polls.
			var push realtime.Subscriber
			natsCfg := realtime.DefaultNATSConfig()
			natsCfg.URL = cfg.Realtime.NATSURL
			nc, err := realtime.ConnectNATS(natsCfg)
			if err != nil {
				log.Warn().Err(err).Str("nats_url", natsCfg.URL).Msg("push unavailable, clients will poll")
			} else {
				defer nc.Close()
				push = realtime.NewNATSSubscriber(nc, cfg.Realtime.SubjectPrefix, clock)
			}
			subscriber := realtime.NewFallbackSubscriber(push, cfg.Realtime.PollInterval, clock)

			cm := gateway.NewConnectionManager(subscriber, gateway.DefaultConnectionConfig())
			go cm.Start(ctx)

			mux := http.NewServeMux()
			gateway.NewWebSocketHandler(cm, authApp).RegisterRoutes(mux)

			log.Info().
				Str("port", cfg.GatewayPort).
				Str("nats_url", cfg.Realtime.NATSURL).
				Dur("poll_interval", cfg.Realtime.PollInterval).
				Msg("starting group gateway")

			server := &http.Server{
				Addr:              fmt.Sprintf(":%s", cfg.GatewayPort),
				Handler:           cors.New(cors.Options{AllowedMethods: []string{http.MethodGet}}).Handler(mux),
				ReadHeaderTimeout: 10 * time.Second,
				IdleTimeout:       120 * time.Second,
			}
			return serveUntilDone(ctx, server, cfg.ShutdownWait)
		},
	}
}
