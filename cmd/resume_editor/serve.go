package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/metrics"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/scheduler"
	"github.com/jonathan/resume-editor/internal/server"
	"github.com/jonathan/resume-editor/internal/storage"
)

var (
	serveHost    string
	servePort    int
	serveVariant string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor",
	Long:  `Start a local HTTP server that hosts the form editor and its live preview.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Interface to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveVariant, "variant", "", "Form variant: full or minimal (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// app is a wired editor: the loop, its session and the server in front of it.
type app struct {
	loop    *editor.Loop
	sched   *scheduler.Debouncer
	session *editor.Session
	server  *server.Server
}

// newApp wires the editor over gw. The loop must be running before newApp is
// called because the session is created on it.
func newApp(ctx context.Context, cfg config.Config, loop *editor.Loop, gw *storage.Gateway) (*app, error) {
	variant, err := rendering.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	reg.MustRegister(collectors.NewGoCollector())

	a := &app{loop: loop, sched: scheduler.New(loop.Executor())}
	hub := server.NewHub()
	opts := editor.Options{
		Variant:      variant,
		InputDelay:   cfg.InputDelay(),
		SyncDelay:    cfg.SyncDelay(),
		PersistDelay: cfg.PersistDelay(),
	}
	if err := loop.Do(ctx, func() {
		a.session = editor.NewSession(ctx, gw, a.sched, renderer, hub, opts)
	}); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	a.server = server.New(server.Config{Host: serveHost, Port: cfg.Port, Gatherer: reg}, loop, a.session, renderer, hub)
	return a, nil
}

// shutdown writes any pending edits and stops the scheduler.
func (a *app) shutdown() {
	if err := a.loop.Do(context.Background(), a.session.Flush); err != nil {
		log.Printf("[editor] Failed to flush pending edits: %v", err)
	}
	a.sched.Stop()
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveVariant != "" {
		cfg.Variant = serveVariant
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	gw, store, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	loop := editor.NewLoop(0)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(loopCtx)
	})

	a, err := newApp(gCtx, cfg, loop, gw)
	if err != nil {
		stopLoop()
		_ = g.Wait()
		return err
	}

	g.Go(func() error {
		defer stopLoop()
		defer a.shutdown()
		return a.server.Run(gCtx)
	})

	return g.Wait()
}
