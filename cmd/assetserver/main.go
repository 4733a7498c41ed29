package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/server"
)

func main() {
	addr := flag.String("addr", server.DefaultAddr, "listen address")
	public := flag.String("public", "public", "directory of static assets")
	index := flag.String("index", "index.html", "document served for non-file paths")
	flag.Parse()

	srv := server.New(
		server.WithAddr(*addr),
		server.WithPublicDir(*public),
		server.WithIndex(*index),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("[Server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[Server] shutdown: %v", err)
		}
	}
}
