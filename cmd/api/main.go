package main

import (
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/plutov/paypal/v4"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"

	"github.com/backhomebarber/booking-api/internal/config"
	"github.com/backhomebarber/booking-api/internal/db"
	"github.com/backhomebarber/booking-api/internal/routes"
)

func main() {
	log := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "booking-api").
		Logger()

	cfg := config.Load()

	database := db.NewDB(cfg, log)

	// ======================================================
	// REDIS (opcional; cache degrada para consulta direta)
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
	}

	// ======================================================
	// PAYMENT CREDENTIALS
	// ======================================================
	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
	} else {
		log.Warn().Msg("stripe key not configured, card payments unavailable")
	}

	var paypalClient *paypal.Client
	if cfg.PayPalClientID != "" && cfg.PayPalSecret != "" {
		client, err := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalAPIBase)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create paypal client")
		}
		paypalClient = client
	} else {
		log.Warn().Msg("paypal credentials not configured, paypal payments unavailable")
	}

	r := routes.SetupRouter(database, rdb, paypalClient, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("starting server")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
