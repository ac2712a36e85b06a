package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"redsands/internal/app"
	"redsands/internal/config"
	"redsands/internal/pipeline"
	"redsands/internal/server"
)

func main() {
	fs := flag.NewFlagSet("planet-server", flag.ExitOnError)
	listen := fs.String("listen", "", "HTTP listen address (overrides server.listen)")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	source := app.ElevationSource(cfg.Assets.ElevationDir, cfg.Seed)
	orch, err := pipeline.Start(source, pipeline.FromConfig(cfg))
	if err != nil {
		log.Fatal(err)
	}
	defer orch.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(orch, cfg.Parameters())
	go func() {
		if err := srv.Watch(ctx, cfg.Window.TPS); err != nil && ctx.Err() == nil {
			log.Printf("generation: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("Server starting on %s", cfg.Server.Listen)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
