// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/gala-live/liveclient"
	"github.com/danielhkuo/gala-live/models"
)

// rootOptions holds the command flags
type rootOptions struct {
	Server         string
	ReconnectDelay time.Duration
	Refresh        time.Duration
	Verbose        bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bigscreen",
		Short: "Follow the gala live feed in a terminal",
		Long: `Connect to a gala live server, seed the screen from the REST snapshot
and apply push events as they arrive. The view is reprinted on every change.

Example:
  bigscreen --server http://localhost:3318
  bigscreen --server https://gala.example.com --refresh 30s`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.ReconnectDelay <= 0 {
				return fmt.Errorf("invalid --reconnect-delay %s: must be positive", opts.ReconnectDelay)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "bigscreen:", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Server, "server", "http://localhost:3318", "server base URL")
	cmd.Flags().DurationVar(&opts.ReconnectDelay, "reconnect-delay", liveclient.DefaultReconnectDelay, "delay before reconnecting the push channel")
	cmd.Flags().DurationVar(&opts.Refresh, "refresh", liveclient.DefaultRefreshInterval, "snapshot and stats refresh interval (0 fetches once)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging to stderr")

	return cmd
}

func run(parent context.Context, opts *rootOptions) error {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	pushURL, err := liveclient.WebSocketURL(opts.Server)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := liveclient.NewSnapshotClient(opts.Server, nil)
	screen := liveclient.NewScreen(liveclient.ScreenOptions{})
	supervisor := liveclient.NewSupervisor(pushURL, liveclient.Options{ReconnectDelay: opts.ReconnectDelay})

	var stats atomic.Pointer[models.StatsResponse]
	var renderMu sync.Mutex
	redraw := func() {
		renderMu.Lock()
		defer renderMu.Unlock()
		var header models.StatsResponse
		if s := stats.Load(); s != nil {
			header = *s
		}
		render(os.Stdout, screen, header, supervisor.State(), time.Now())
	}

	screen.OnChange(redraw)
	supervisor.SetHandler(screen.Apply)
	supervisor.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return liveclient.Sync(gctx, client, screen, opts.Refresh, opts.ReconnectDelay)
	})
	g.Go(func() error {
		return refreshStats(gctx, client, opts.Refresh, func(s models.StatsResponse) {
			stats.Store(&s)
			redraw()
		})
	})
	g.Go(func() error {
		<-gctx.Done()
		supervisor.Close()
		screen.Close()
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// refreshStats reads the header counters once and then every interval
func refreshStats(ctx context.Context, client *liveclient.SnapshotClient, interval time.Duration, update func(models.StatsResponse)) error {
	fetch := func() {
		s, err := client.Stats(ctx)
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("stats fetch failed", "error", err)
			}
			return
		}
		update(s)
	}

	fetch()
	if interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fetch()
		}
	}
}
