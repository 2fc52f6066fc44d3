package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/kv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		return serve(folio.New(cfg, serveOptions(cmd)...))
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides FOLIO_ADDR)")
	serveCmd.Flags().String("static", "", "directory served under /public (default \"public\")")
	serveCmd.Flags().Bool("memory", false, "keep the content record in memory; edits are lost on exit")
}

func serveOptions(cmd *cobra.Command) []folio.Option {
	opts := []folio.Option{folio.WithLogger(logger)}
	if dir, _ := cmd.Flags().GetString("static"); dir != "" {
		opts = append(opts, folio.WithStaticDir(dir))
	}
	if mem, _ := cmd.Flags().GetBool("memory"); mem {
		logger.Warn("content record kept in memory only")
		opts = append(opts, folio.WithStorage(kv.NewMemory()))
	}
	return opts
}

func serve(app *folio.App) error {
	defer app.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
