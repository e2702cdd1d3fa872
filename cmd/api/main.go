package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"jobboard/internal/auth"
	"jobboard/internal/database"
	"jobboard/internal/handlers"
	"jobboard/internal/services"
	"jobboard/internal/store"
)

func main() {
	// Environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Database
	db := database.Connect()
	st := store.New(db)

	// Core services
	ctx := context.Background()

	var aiService *services.AIService
	if svc, err := services.NewAIService(ctx); err != nil {
		log.Printf("⚠️  AI features disabled: %v", err)
	} else {
		aiService = svc
		log.Println("✅ Gemini client connected.")
	}

	listingService := services.NewListingService(st, st)
	applicationService := services.NewApplicationService(st, ranker(aiService))
	userService := services.NewUserService(st, summarizer(aiService))

	// Gmail for the digest mailer (nil client disables it)
	var gmailService *gmail.Service
	if httpClient := auth.GetGmailClient(); httpClient != nil {
		svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			log.Printf("⚠️  Failed to create Gmail service: %v", err)
		} else {
			gmailService = svc
			log.Println("✅ Gmail service connected.")
		}
	}

	digestService := services.NewDigestService(st, gmailService, matcher(aiService))
	digestService.StartWatcher(ctx, digestInterval())

	// Session verification
	verifier, err := auth.NewStaticTokenVerifier()
	if err != nil {
		log.Fatal("Failed to load auth tokens:", err)
	}

	// Handlers
	listingHandler := handlers.NewListingHandler(listingService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	searchHandler := handlers.NewSearchHandler(listingService, aiService)
	userHandler := handlers.NewUserHandler(userService)
	webhookHandler := handlers.NewWebhookHandler(st)

	// Router & CORS
	r := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Webhook-Secret"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Public seeker routes
		api.GET("/job-listings", listingHandler.PublicIndex)
		api.GET("/job-listings/:id", listingHandler.PublicGet)

		// Authenticated routes
		authed := api.Group("", auth.RequireSession(verifier))
		{
			authed.POST("/ai-search", searchHandler.AISearch)

			authed.PUT("/user/resume", userHandler.SetResume)
			authed.PUT("/user/notification-settings", userHandler.SetNotificationSettings)

			authed.POST("/job-listings", listingHandler.Create)
			authed.PUT("/job-listings/:id", listingHandler.Update)
			authed.DELETE("/job-listings/:id", listingHandler.Delete)
			authed.POST("/job-listings/:id/status", listingHandler.ToggleStatus)
			authed.POST("/job-listings/:id/featured", listingHandler.ToggleFeatured)

			authed.GET("/employer/job-listings", listingHandler.EmployerIndex)
			authed.GET("/employer/job-listings/:id/applications", applicationHandler.List)
			authed.PUT("/employer/notification-settings", userHandler.SetOrgNotificationSettings)

			authed.POST("/job-listings/:id/applications", applicationHandler.Submit)
			authed.PUT("/job-listings/:id/applications/:userId/stage", applicationHandler.ChangeStage)
			authed.PUT("/job-listings/:id/applications/:userId/rating", applicationHandler.ChangeRating)
		}

		// Auth-provider webhooks
		webhooks := api.Group("/webhooks", handlers.RequireWebhookSecret())
		{
			webhooks.POST("/users", webhookHandler.UserUpserted)
			webhooks.DELETE("/users/:id", webhookHandler.UserDeleted)
			webhooks.POST("/organizations", webhookHandler.OrganizationUpserted)
			webhooks.DELETE("/organizations/:id", webhookHandler.OrganizationDeleted)
			webhooks.POST("/memberships/deleted", webhookHandler.MembershipDeleted)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server starting on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

func digestInterval() time.Duration {
	if v := os.Getenv("DIGEST_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid DIGEST_INTERVAL %q, using default", v)
	}
	return 24 * time.Hour
}

// The AI service is optional at boot; these keep a typed nil from sneaking
// into the services' interface fields.

func ranker(ai *services.AIService) services.ApplicationRanker {
	if ai == nil {
		return nil
	}
	return ai
}

func summarizer(ai *services.AIService) services.Summarizer {
	if ai == nil {
		return nil
	}
	return ai
}

func matcher(ai *services.AIService) services.ListingMatcher {
	if ai == nil {
		return nil
	}
	return ai
}
