// Command api serves the call-for-papers REST API.
//
// @title Conference CFP API
// @version 1.0
// @description Speaker registration, session submission and organizer review.
// @BasePath /api/cfp
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Organizer JWT as "Bearer <token>".
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"conferencecfp/config"
	_ "conferencecfp/docs"
	"conferencecfp/internal/adapters/auth"
	"conferencecfp/internal/adapters/email"
	"conferencecfp/internal/adapters/events"
	deliveryhttp "conferencecfp/internal/delivery/http"
	"conferencecfp/internal/delivery/http/controllers"
	"conferencecfp/internal/delivery/http/middleware"
	"conferencecfp/internal/domain"
	"conferencecfp/internal/repository/postgres"
	"conferencecfp/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	publisher, closePublisher, err := newPublisher(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	tx := postgres.NewTransactor(db)
	speakerService := services.NewSpeakerService(tx, emailService, publisher, logger, cfg.ContextTimeout)
	sessionService := services.NewSessionService(tx, emailService, publisher, logger, cfg.ContextTimeout)

	router := deliveryhttp.NewRouter(
		controllers.NewSpeakerController(logger, speakerService),
		controllers.NewSessionController(logger, sessionService),
		controllers.NewHealthController(logger, db),
		auth.NewJWTVerifier(cfg.JWTSecret, domain.RoleOrganizer),
		logger,
	)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPublisher returns the Redis publisher when REDIS_ADDR is set, otherwise a logging no-op.
func newPublisher(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (domain.NotificationPublisher, func(), error) {
	if cfg.Addr == "" {
		logger.Info("REDIS_ADDR not set, notifications are only logged")
		return events.NewNoopPublisher(logger), func() {}, nil
	}
	pub, err := events.NewRedisPublisher(ctx, events.RedisConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Channel:  cfg.Channel,
	})
	if err != nil {
		return nil, nil, err
	}
	return pub, func() {
		if err := pub.Close(); err != nil {
			logger.Warn("close redis publisher", "err", err)
		}
	}, nil
}
