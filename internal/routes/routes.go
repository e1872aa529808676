package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/plutov/paypal/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/backhomebarber/booking-api/internal/audit"
	"github.com/backhomebarber/booking-api/internal/cache"
	"github.com/backhomebarber/booking-api/internal/config"
	"github.com/backhomebarber/booking-api/internal/handlers"
	"github.com/backhomebarber/booking-api/internal/infra/repository"
	"github.com/backhomebarber/booking-api/internal/middleware"
	"github.com/backhomebarber/booking-api/internal/payment"
	"github.com/backhomebarber/booking-api/internal/usecase/booking"
)

func SetupRouter(
	db *gorm.DB,
	rdb *redis.Client,
	paypalClient *paypal.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA
	// ======================================================

	repo := repository.NewAppointmentGormRepository(db)

	availabilityCache := cache.NewAvailability(
		rdb,
		time.Duration(cfg.AvailabilityCacheTTLSeconds)*time.Second,
		log,
	)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	// ======================================================
	// PAYMENT PROVIDERS
	// ======================================================

	stripeProvider := payment.NewStripeProvider(cfg.Currency, payment.DefaultStripeTimeout, log)

	paypalCfg := payment.PayPalConfig{
		Currency:  cfg.Currency,
		ReturnURL: cfg.PayPalReturnURL,
		CancelURL: cfg.PayPalCancelURL,
	}

	// sem credenciais o provedor fica de pé, mas Initiate responde
	// provider_unavailable em vez de quebrar o boot
	paypalProvider := payment.NewPayPalProvider(nil, paypalCfg, log)
	if paypalClient != nil {
		paypalProvider = payment.NewPayPalProvider(paypalClient, paypalCfg, log)
	}

	cashappProvider := payment.NewCashAppProvider(
		payment.ShareLinkOpener{},
		cfg.CashAppCashtag,
		payment.DefaultCashAppTimeout,
		log,
	)

	cashProvider := payment.NewCashProvider(log)

	orchestrator := payment.NewOrchestrator(log,
		stripeProvider,
		paypalProvider,
		cashappProvider,
		cashProvider,
	)

	// ======================================================
	// USE CASES
	// ======================================================

	bookUC := booking.NewBook(repo, orchestrator, availabilityCache, auditDispatcher, log)
	cancelUC := booking.NewCancelAppointment(repo, availabilityCache, auditDispatcher)
	completeUC := booking.NewCompleteAppointment(repo, auditDispatcher)
	updatePaymentUC := booking.NewUpdatePayment(repo, auditDispatcher)
	listUC := booking.NewListUserAppointments(repo)
	availabilityUC := booking.NewGetAvailability(repo, availabilityCache)

	// ======================================================
	// HANDLERS
	// ======================================================

	authHandler := handlers.NewAuthHandler(db, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC, cancelUC, completeUC, updatePaymentUC, listUC, orchestrator,
	)
	paymentHandler := handlers.NewPaymentHandler(orchestrator)

	// ======================================================
	// ROUTES
	// ======================================================

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/shops/:slug/availability", availabilityHandler.GetSlots)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.POST("/appointments", appointmentHandler.Create)
		authed.GET("/appointments", appointmentHandler.List)
		authed.GET("/appointments/upcoming", appointmentHandler.Upcoming)
		authed.GET("/appointments/:id", appointmentHandler.Get)
		authed.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		authed.PUT("/appointments/:id/payment", appointmentHandler.UpdatePayment)

		authed.PATCH("/appointments/:id/complete",
			middleware.RequireRole("barber", "admin"),
			appointmentHandler.Complete,
		)

		authed.POST("/payments/:session/navigation", paymentHandler.Navigation)
		authed.POST("/payments/:session/attestation", paymentHandler.Attestation)
		authed.POST("/payments/:session/card-result", paymentHandler.CardResult)
		authed.POST("/payments/:session/cancel", paymentHandler.Cancel)
	}

	return r
}
