package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/songbook/internal/api"
	"github.com/franz/songbook/internal/util"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Load the catalog once and serve it read-only as JSON:

  GET /healthz
  GET /api/v1/songs?q=&sort=&limit=
  GET /api/v1/songs/:key
  GET /api/v1/songs/:key/raw
  GET /api/v1/groups?by=
  GET /api/v1/stats

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", util.DefaultServeAddr, "listen address")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	songs, source, err := loadSongs(ctx)
	if err != nil {
		return err
	}

	if !viper.GetBool("verbose") {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := GetConfigString("serve.addr", util.DefaultServeAddr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(songs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		util.InfoLog("Serving %d songs from %s on %s", len(songs), source, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		util.InfoLog("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	util.SuccessLog("Server stopped")
	return nil
}
