package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownGrace bounds how long in-flight requests get to finish once a
// shutdown signal arrives.
const shutdownGrace = 15 * time.Second

// serve starts the background job workers and the HTTP server, then blocks
// until shutdown.
func (app *application) serve() error {
	app.runner.Start()
	defer app.runner.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      app.setupRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: time.Duration(app.config.Workflow.TimeoutSeconds+10) * time.Second,
		IdleTimeout:  time.Minute,
	}

	errChan := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-stop:
		app.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	app.logger.Info("server stopped")
	return nil
}
