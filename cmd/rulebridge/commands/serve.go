package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/rulebridge/internal/config"
	"github.com/TimurManjosov/rulebridge/internal/server"
	"github.com/TimurManjosov/rulebridge/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generated rule-set artifacts over HTTP",
	Long: `Serve the sing-box JSON artifacts and raw rule-list mirrors produced by
"rulebridge run" so routing engines can pull rule-sets by URL.

Routes:
  GET /                      JSON index of available rule-sets
  GET /sing-box/<name>.json  generated sing-box rule-set (ETag revalidation)
  GET /rule-set/<name>.yaml  raw rule-list mirror
  GET /healthz               liveness probe
  GET /metrics               prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		log := newLogger(cfg)

		telemetry.Init()
		srv := server.New(cfg.RawDir, cfg.OutDir, log)

		httpSrv := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      srv.Router(),
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("server failed")
			}
		}()

		// graceful shutdown
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(ctxShut)
		log.Info().Msg("stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
