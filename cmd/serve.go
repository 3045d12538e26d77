package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fund-sim/fund-sim/api"
)

var (
	listenAddr     string   // HTTP listen address
	maxTrials      int      // Per-request trial cap
	allowedOrigins []string // CORS origins
)

// serveCmd exposes simulation runs over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if logrus.GetLevel() < logrus.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}

		server := api.NewServer(workers, maxTrials)
		server.AllowedOrigins = allowedOrigins
		httpServer := &http.Server{
			Addr:              listenAddr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logrus.Errorf("Shutdown: %v", err)
			}
		}()

		logrus.Infof("Starting API server on %s", listenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
		logrus.Info("Server stopped.")
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers per request (0 = one per CPU)")
	serveCmd.Flags().IntVar(&maxTrials, "max-trials", 100_000, "Maximum trials per request")
	serveCmd.Flags().StringSliceVar(&allowedOrigins, "cors-origin", nil, "Allowed CORS origins (default any)")
}
