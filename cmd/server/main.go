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

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/config"
	"github.com/DoyleJ11/front-office-draft/internal/httpapi"
	"github.com/DoyleJ11/front-office-draft/internal/hub"
	"github.com/DoyleJ11/front-office-draft/internal/logger"
	"github.com/DoyleJ11/front-office-draft/internal/session"
	"github.com/DoyleJ11/front-office-draft/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	cat := catalog.Reference()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return err
		}
	}
	log.Info("catalog loaded",
		zap.Int("items", len(cat.Items)),
		zap.Int("synergies", len(cat.Synergies)),
		zap.Int("modes", len(cat.Modes)))

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, session.Options{
		Catalog: cat,
		Store:   st,
		Journal: st,
		Logger:  log.Named("session"),
		Seed:    cfg.RivalSeed,
	})

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(httpapi.NewAPI(h, cat, st, log.Named("http"), cfg.RivalEnabled))
	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		select {
		case h.Inbox() <- hub.ShutdownHub{}:
		case <-h.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
