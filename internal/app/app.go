package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/config"
	httpx "github.com/logeshwaran0404/Albany-VSM-sub001/internal/http"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/http/handlers"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/http/middleware"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/infrastructure/auth"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/infrastructure/database"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/infrastructure/notifications"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/infrastructure/repositories"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/services"
)

// Run wires every component at startup and serves until the listener stops.
// All singletons are constructed here and passed by reference; there is no
// global registry.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService(cfg.BcryptCost)
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTLs, 15*time.Minute)
	notifier := notifications.NewNotifier(
		notifications.NewTwilioSMSSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom),
		notifications.NewSMTPEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom),
	)

	// Repositories
	identityRepo := repositories.NewIdentityRepository(gdb)

	// Services
	otpConfig := services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	}
	otpSvc := services.NewOTPService(notifier, rdb.Client, otpConfig)
	authSvc := services.NewAuthService(identityRepo, passwordSvc, tokenSvc, otpSvc)

	// Handlers and pipeline
	authH := handlers.NewAuthHandlers(authSvc)
	authMW := middleware.NewAuthMW(tokenSvc)
	matrix := middleware.NewAccessMatrix(cfg.AccessRules, cfg.AllowUnmatchedAuthenticated)

	r := httpx.BuildRouter(authH, authMW, matrix)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
