package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-upload-form/internal/config"
	"pdf-upload-form/internal/handler"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = time.Minute
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	cfg := container.Config

	// Submissions are detached from requests but end with the process.
	submitCtx, cancelSubmissions := context.WithCancel(context.Background())
	defer cancelSubmissions()

	// Handlers
	formHandler := handler.NewFormHandler(
		submitCtx,
		container.Sessions,
		container.Inspector,
		container.Renderer,
		cfg.GetMaxFileSize(),
		container.Logger,
	)

	healthHandler := handler.NewHealthHandler(
		container.ProcessClient,
		container.Sessions,
		container.Logger,
	)

	sessionMiddleware := handler.NewSessionMiddleware(
		container.Sessions,
		container.Logger,
	)

	// Router
	router := handler.NewRouter(
		formHandler,
		healthHandler,
		sessionMiddleware.Middleware,
		handler.RequestLogger(container.Logger),
		cfg.GetAllowedOrigins(),
	)

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		container.Logger.Info("Server listening", "address", server.Addr, "process_endpoint", cfg.GetProcessEndpoint())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return container.Sessions.Run(gctx, janitorInterval)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		container.Logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)

		// Give outstanding uploads the same grace period, then abandon them.
		settled := make(chan struct{})
		go func() {
			formHandler.Wait()
			close(settled)
		}()
		select {
		case <-settled:
		case <-shutdownCtx.Done():
			cancelSubmissions()
			<-settled
		}
		return err
	})

	if err := g.Wait(); err != nil {
		container.Logger.Error("Server stopped with error", err)
		os.Exit(1)
	}
	container.Logger.Info("Server exited")
}
