package api

import (
	authUsecase "recruitbridge-backend/internal/auth/usecase"
	identityDelivery "recruitbridge-backend/internal/identity/delivery"
	identityUsecasePkg "recruitbridge-backend/internal/identity/usecase"
	messagingDelivery "recruitbridge-backend/internal/messaging/delivery"
	messagingUsecasePkg "recruitbridge-backend/internal/messaging/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	identityHandler  *identityDelivery.IdentityHandler
	messagingHandler *messagingDelivery.MessagingHandler
}

func NewHandler(authUc authUsecase.AuthUsecase, identityUc identityUsecasePkg.IdentityUsecase, messagingUc messagingUsecasePkg.MessagingUsecase, verifier messagingDelivery.SignatureVerifier) *Handler {
	return &Handler{
		authUsecase:      authUc,
		identityHandler:  identityDelivery.NewIdentityHandler(identityUc),
		messagingHandler: messagingDelivery.NewMessagingHandler(messagingUc, verifier),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.identityHandler, h.messagingHandler)

	return r.Run(addr)
}
