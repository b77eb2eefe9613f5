package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/api"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/repository"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/service"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/pkg/config"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/pkg/logger"
)

const (
	ReadTimeout       = 3 * time.Second
	WriteTimeout      = 5 * time.Second
	IdleTimeout       = 60 * time.Second
	ReadHeaderTimeout = 1 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr(ctx, "load config", err)

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	store, err := repository.Open(cfg.StorePath)
	panicOnErr(ctx, "open snapshot store", err)

	defer func() { _ = store.Close() }()

	snap, err := store.Load(ctx)
	panicOnErr(ctx, "load snapshot", err)

	s := service.NewService(&cfg, store, snap)

	h := api.NewHandler(s)
	mw := api.NewMiddleware(s)
	router := api.NewRouter(h, mw)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	var wg sync.WaitGroup

	startHTTPServer(&wg, l, server, &cfg)

	waitSignal(l, cancel, server)
	wg.Wait()
}

func startHTTPServer(wg *sync.WaitGroup, l *slog.Logger, server *http.Server, cfg *config.Config) {
	wg.Add(1)

	go func() {
		defer wg.Done()

		l.Info("http server started", "port", cfg.HTTPPort, "store", cfg.StorePath)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Failed to listen and serve", "error", err, "port", cfg.HTTPPort)
			panic(fmt.Sprintf("listen and serve: %s", err))
		}

		l.Debug("http server stopped")
	}()
}

func waitSignal(l *slog.Logger, cancel context.CancelFunc, server *http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	l.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		l.Error("server shutdown", "error", err)
	}
}

func panicOnErr(ctx context.Context, msg string, err error) {
	if err != nil {
		slog.ErrorContext(ctx, "Fatal error", "message", msg, "error", err)
		panic(fmt.Sprintf("%s: %s", msg, err))
	}
}
