package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/listora/identity/modules/auth"
	"github.com/listora/identity/pkg/config"
	"github.com/listora/identity/pkg/email"
	"github.com/listora/identity/pkg/file"
	"github.com/listora/identity/pkg/httpserver"
	"github.com/listora/identity/pkg/logger"
	"github.com/listora/identity/pkg/pg"
	"github.com/listora/identity/pkg/session"
)

func main() {
	ctx := context.Background()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(logCfg)

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		pgCfg      pg.Config
		sessionCfg session.Config
		emailCfg   email.Config
		s3Cfg      file.S3Config
		authCfg    auth.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&pgCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&s3Cfg)
	config.MustLoad(&authCfg)
	config.MustLoad(&httpCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, auth.Migrations, "migrations", log); err != nil {
		return err
	}

	sessions, err := session.New(sessionCfg)
	if err != nil {
		return err
	}

	mailer := email.NewDispatcher(newSender(emailCfg, log), log)

	files, err := newFileStorage(ctx, s3Cfg, log)
	if err != nil {
		return err
	}

	var google auth.IdentityVerifier
	if authCfg.GoogleClientID != "" {
		google = auth.NewGoogleVerifier(authCfg.GoogleClientID)
	} else {
		log.WarnContext(ctx, "GOOGLE_CLIENT_ID is not set, federated login disabled")
	}

	svc := auth.NewService(
		auth.NewPostgresStorage(pool),
		sessions,
		mailer,
		files,
		google,
		authCfg,
		auth.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.Readiness(log))
	r.Get("/readyz", httpserver.Readiness(log, pg.Healthcheck(pool)))
	r.Mount("/auth", auth.NewHandler(svc, log).Handle())

	srv := httpserver.New(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("draining outbound email queue")
			mailer.Wait()
		}),
	)

	return srv.Run(ctx, r)
}

// newSender picks the delivery backend. Without Postmark credentials emails
// are written to a local directory instead of being sent.
func newSender(cfg email.Config, log *slog.Logger) email.Sender {
	if cfg.PostmarkServerToken != "" {
		sender, err := email.NewPostmarkSender(cfg)
		if err == nil {
			return sender
		}
		log.Warn("postmark sender unavailable, falling back to dev sender", slog.Any("error", err))
	} else {
		log.Warn("POSTMARK_SERVER_TOKEN is not set, using dev email sender", slog.String("dir", cfg.DevDir))
	}
	return email.NewDevSender(cfg.DevDir)
}

// newFileStorage picks the blob backend. Without a bucket configured profile
// images land under ./tmp/uploads.
func newFileStorage(ctx context.Context, cfg file.S3Config, log *slog.Logger) (file.Storage, error) {
	if cfg.Bucket != "" {
		return file.NewS3Storage(ctx, cfg)
	}
	log.WarnContext(ctx, "S3_BUCKET is not set, storing uploads on local disk")
	return file.NewLocalStorage("./tmp/uploads", "/uploads")
}
