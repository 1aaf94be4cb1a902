package cmd

import (
	"log"

	"booking-system/config"
	"booking-system/internal/handlers"
	"booking-system/internal/services"
	_ "booking-system/migrations"
	"booking-system/monitoring"
	"booking-system/security"
	"booking-system/utils"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	pubnub "github.com/pubnub/go"
	"github.com/shopspring/decimal"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub (optional; admin notifications are skipped without keys)
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pn = pubnub.NewPubNub(pnConfig)
	}

	// Initialize services
	draftStore := services.NewDraftStore(redisClient, cfg.DraftTTL)
	checkoutService := services.NewCheckoutService(draftStore, decimal.NewFromFloat(cfg.PlatformFee))
	notifyService := services.NewNotifyService(pn, cfg.AdminChannel)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(app)
	postHandler := handlers.NewPostHandler(app)
	checkoutHandler := handlers.NewCheckoutHandler(app, checkoutService, notifyService, cfg)
	adminHandler := handlers.NewAdminHandler(app, notifyService)

	// Rate limiting
	limiter := security.NewRateLimiter(redisClient)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.Environment == "development",
	})

	if cfg.EnableMetrics {
		go monitoring.Serve(cfg.MetricsPort)
	}

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Catalogue endpoints
		e.Router.GET("/api/v1/events", eventHandler.ListEvents)
		e.Router.GET("/api/v1/events/{eventId}", eventHandler.GetEvent)
		e.Router.GET("/api/v1/posts", postHandler.ListPosts)
		e.Router.GET("/api/v1/posts/{slug}", postHandler.GetPost)

		// Checkout endpoints
		checkout := e.Router.Group("/api/v1/checkout")
		checkout.BindFunc(limiter.AntiBot())
		checkout.POST("/start", checkoutHandler.StartCheckout)
		checkout.GET("/{draftId}", checkoutHandler.GetCheckout)
		checkout.PUT("/{draftId}/tickets", checkoutHandler.SetTickets)
		checkout.PUT("/{draftId}/details", checkoutHandler.SubmitDetails)
		checkout.POST("/{draftId}/back", checkoutHandler.Back)
		checkout.GET("/{draftId}/payment", checkoutHandler.PaymentInstructions)
		checkout.POST("/{draftId}/submit", checkoutHandler.Submit).
			BindFunc(limiter.SubmitLimit(cfg.SubmitRateLimit, cfg.SubmitRateWindow))

		// Admin endpoints
		admin := e.Router.Group("/api/v1/admin")
		admin.POST("/events", adminHandler.CreateEvent)
		admin.PATCH("/events/{eventId}", adminHandler.UpdateEvent)
		admin.DELETE("/events/{eventId}", adminHandler.DeleteEvent)
		admin.POST("/posts", adminHandler.CreatePost)
		admin.PATCH("/posts/{postId}", adminHandler.UpdatePost)
		admin.DELETE("/posts/{postId}", adminHandler.DeletePost)
		admin.GET("/bookings", adminHandler.ListBookings)
		admin.POST("/bookings/{bookingId}/review", adminHandler.ReviewBooking)
		admin.GET("/dashboard", adminHandler.GetDashboard)

		// Test endpoint for proof-less submission
		if cfg.Environment == "development" {
			e.Router.POST("/api/v1/test/simulate-submit/{draftId}", checkoutHandler.SimulateSubmit)
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	return app.Start()
}
