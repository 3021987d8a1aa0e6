package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"golang.org/x/sync/errgroup"

	api "github.com/vadimbarashkov/qr-manager/internal/api/http"
	"github.com/vadimbarashkov/qr-manager/internal/config"
	repo "github.com/vadimbarashkov/qr-manager/internal/database/postgres"
	"github.com/vadimbarashkov/qr-manager/internal/llm"
	"github.com/vadimbarashkov/qr-manager/internal/service"
	"github.com/vadimbarashkov/qr-manager/internal/storage"
	"github.com/vadimbarashkov/qr-manager/pkg/postgres"
)

// Run wires the application together and serves HTTP until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	db, err := postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := postgres.RunMigrations("file://migrations", cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	store, err := storage.New(cfg.QRStorage.Dir)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare image storage: %w", op, err)
	}

	qrRepo := repo.NewQRCodeRepository(db)
	qrSvc := service.NewQRCodeService(qrRepo, store, service.Config{
		BaseURL:          cfg.BaseURL,
		ShortCodeLength:  cfg.ShortCodeLength,
		DefaultFillColor: cfg.QRStorage.FillColor,
		DefaultBackColor: cfg.QRStorage.BackColor,
	})

	llmClient := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout)
	assistant := llm.NewAssistant(llmClient, qrSvc)

	logger := httplog.NewLogger("qr-manager", httplog.Options{
		JSON:    cfg.Env == config.EnvProd,
		Concise: cfg.Env != config.EnvProd,
	})

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        api.NewRouter(logger, qrSvc, assistant, store),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
