package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kawuz/coffee-shop-api/internal/api"
	"github.com/kawuz/coffee-shop-api/internal/core/service"
	"github.com/kawuz/coffee-shop-api/internal/infrastructure/captcha"
	"github.com/kawuz/coffee-shop-api/internal/infrastructure/config"
	mongodb "github.com/kawuz/coffee-shop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kawuz/coffee-shop-api/internal/infrastructure/db/redis"
	"github.com/kawuz/coffee-shop-api/internal/infrastructure/mail"
	"github.com/kawuz/coffee-shop-api/internal/infrastructure/queue"
	"github.com/kawuz/coffee-shop-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	tokens, err := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index setup failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	verifier := captcha.NewRecaptchaVerifier(
		cfg.Recaptcha.Secret,
		log,
		captchaOptions(cfg)...,
	)

	sender := mail.NewSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	dispatcher := queue.NewDispatcher(cfg.MailWorkers, sender, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, api.Dependencies{
		Mongo:   db,
		Redis:   rdb,
		Tokens:  tokens,
		Captcha: verifier,
		Mailer:  dispatcher,
		Logger:  log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func captchaOptions(cfg *config.Config) []captcha.Option {
	var opts []captcha.Option
	if cfg.Recaptcha.VerifyURL != "" {
		opts = append(opts, captcha.WithVerifyURL(cfg.Recaptcha.VerifyURL))
	}
	if cfg.Recaptcha.Timeout > 0 {
		opts = append(opts, captcha.WithTimeout(cfg.Recaptcha.Timeout))
	}
	return opts
}
