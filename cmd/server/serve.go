package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"yultimate_hub/internal/auth"
	"yultimate_hub/internal/clock"
	"yultimate_hub/internal/controllers"
	"yultimate_hub/internal/logger"
	"yultimate_hub/internal/messaging"
	"yultimate_hub/internal/middleware"
	"yultimate_hub/internal/ratelimit"
	"yultimate_hub/internal/realtime"
	"yultimate_hub/internal/routes"
	"yultimate_hub/internal/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logWriter := logger.Setup(cfg.Log)
	gin.SetMode(cfg.GinMode)

	db, err := openDatabase()
	if err != nil {
		logrus.WithError(err).Error("Failed to open database.")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var limiter *ratelimit.LoginLimiter
	if cfg.RedisURL != "" {
		limiter, err = ratelimit.NewFromURL(ctx, cfg.RedisURL, cfg.LoginMaxAttempts, cfg.LoginWindow)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, login limiter disabled.")
		} else {
			defer limiter.Close()
		}
	}

	hub := realtime.NewHub(256)
	go hub.Run(ctx)

	var mailer messaging.Mailer = messaging.NoopMailer{}
	if cfg.SMTP.Enabled() {
		mailer = messaging.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		logrus.Warn("SMTP not configured, emails will be skipped.")
	}
	var sms messaging.SMSSender = messaging.NoopSMS{}
	if cfg.SMS.Enabled() {
		sms = messaging.NewGatewaySMS(cfg.SMS.GatewayURL, cfg.SMS.APIKey, cfg.SMS.SenderID)
	} else {
		logrus.Warn("SMS gateway not configured, texts will be skipped.")
	}
	dispatcher := messaging.NewDispatcher(mailer, sms)

	clk := clock.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, clk)
	notifier := services.NewNotifier(db, clk, hub)

	h := &controllers.Handler{
		Accounts:     services.NewAccountService(db, clk, notifier, dispatcher),
		Auth:         services.NewAuthService(db, tokens, limiter, cfg.AdminCode),
		Transfers:    services.NewTransferService(db, clk, notifier),
		Notifier:     notifier,
		Sessions:     services.NewSessionService(db, clk, notifier),
		Teams:        services.NewTeamService(db),
		Tournaments:  services.NewTournamentService(db, notifier),
		Institutions: services.NewInstitutionService(db),
		Mailer:       mailer,
		SMS:          sms,
		Hub:          hub,
		Tokens:       tokens,
	}

	r := routes.SetupRouter(h, logWriter)
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           middleware.EnableCORS(r, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("Server shutdown failed.")
		}
	}()

	logrus.WithField("addr", srv.Addr).Info("Server running.")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logrus.Info("Server stopped.")
	return nil
}
