package api

import (
	"net/http"

	"recruitbridge-backend/internal/auth/delivery"
	authUsecase "recruitbridge-backend/internal/auth/usecase"
	identityDelivery "recruitbridge-backend/internal/identity/delivery"
	messagingDelivery "recruitbridge-backend/internal/messaging/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, identityHandler *identityDelivery.IdentityHandler, messagingHandler *messagingDelivery.MessagingHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Provider-facing webhook (no auth; signed by the provider)
		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/mailgun", messagingHandler.HandleInboundWebhook)
		}

		// Identity routes (protected)
		identity := api.Group("/identity")
		identity.Use(delivery.AuthMiddleware(authUc))
		{
			identity.POST("/check", identityHandler.CheckUsername)
			identity.POST("/create", identityHandler.CreateIdentity)
			identity.POST("/me", identityHandler.GetCurrentIdentity)
			identity.POST("/cleanup", identityHandler.CleanupIdentities)
		}

		// Messaging routes (protected)
		messages := api.Group("/messages")
		messages.Use(delivery.AuthMiddleware(authUc))
		{
			messages.POST("/send", messagingHandler.SendMessage)
		}

		threads := api.Group("/threads")
		threads.Use(delivery.AuthMiddleware(authUc))
		{
			threads.GET("", messagingHandler.GetThreads)
			threads.GET("/:id/messages", messagingHandler.GetThreadMessages)
			threads.POST("/:id/read", messagingHandler.MarkThreadRead)
		}
	}
}
