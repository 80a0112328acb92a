package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmoiron/mctext/internal/app"
)

// listenAndServe is replaced in tests.
var listenAndServe = func(srv *http.Server) error {
	return srv.ListenAndServe()
}

func newCmdServe(opts *Options) *cobra.Command {
	var quit bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the markup playground and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(opts.parser(), opts.Config.Log.Verbose)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			if quit {
				slog.Info("initialized successfully; quitting (--quit)")
				return nil
			}
			return serve(cmd.Context(), opts.Config.Server.Addr, a.Router())
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:8222", "listen address (host:port)")
	cmd.Flags().BoolVarP(&quit, "quit", "q", false, "initialize, then exit without serving")
	return cmd
}

// serve runs h on addr until ctx is done or an interrupt arrives.
func serve(ctx context.Context, addr string, h http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", "url", "http://"+addr)
		errc <- listenAndServe(srv)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
