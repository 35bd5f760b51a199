package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/relaypanel/internal/api"
	"github.com/iammorganparry/relaypanel/internal/buttons"
	"github.com/iammorganparry/relaypanel/internal/device"
	"github.com/iammorganparry/relaypanel/internal/discovery"
	"github.com/iammorganparry/relaypanel/internal/hardware"
	"github.com/iammorganparry/relaypanel/internal/relay"
	"github.com/iammorganparry/relaypanel/internal/sessions"
	"github.com/iammorganparry/relaypanel/internal/status"
	"github.com/iammorganparry/relaypanel/internal/store"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the control loop and the polling API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, flags)
		},
	}
	cmd.Flags().Int("port", 8080, "HTTP port (overrides PORT)")
	cmd.Flags().String("board", "", "Board layout YAML (overrides BOARD_FILE)")
	cmd.Flags().Bool("no-mdns", false, "Do not advertise the panel over mDNS")
	return cmd
}

func serve(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logger
	logger := newLogger(cfg.LogLevel)

	// Board
	board := hardware.DefaultBoard(cfg.DeviceName)
	if cfg.BoardFile != "" {
		board, err = hardware.LoadBoard(cfg.BoardFile, cfg.DeviceName)
		if err != nil {
			return err
		}
	}
	pins := make([]int, len(board.Buttons))
	for i, b := range board.Buttons {
		pins[i] = b.Pin
	}
	logger.Info("board layout", "name", board.Name, "button_pins", pins, "relay_pin", board.Relay.Pin, "hardware", cfg.Hardware)

	// SQLite
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	registry, err := sessions.Load(store.NewKVStore(db))
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	// Device components
	sim := hardware.NewSim()
	btns := buttons.New(sim)
	ctrl := relay.New(sim, btns, registry, logger)
	loop := device.New(registry, btns, ctrl, status.New(btns, ctrl), cfg.TickInterval, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	// Router
	router := api.NewRouter(db, loop, sim, cfg.RequestTimeout, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("relayd starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	if cfg.MDNSEnabled {
		adv, err := discovery.Advertise(board.Name, cfg.Port, logger)
		if err != nil {
			logger.Warn("mdns unavailable, continuing without discovery", "error", err)
		} else {
			defer adv.Close()
		}
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err := <-srvErr:
		runErr = fmt.Errorf("http server: %w", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	<-loopErr

	// Leave the relay de-energized when the daemon exits.
	if err := sim.Drive(false); err != nil {
		logger.Error("release relay", "error", err)
	}

	logger.Info("server stopped")
	return runErr
}
