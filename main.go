package main

import (
	"log"

	api "recruitbridge-backend/cmd/api"
	authUsecase "recruitbridge-backend/internal/auth/usecase"
	identitydomain "recruitbridge-backend/internal/identity/domain"
	identityRepo "recruitbridge-backend/internal/identity/repository"
	identityUsecase "recruitbridge-backend/internal/identity/usecase"
	messagingDelivery "recruitbridge-backend/internal/messaging/delivery"
	messagingdomain "recruitbridge-backend/internal/messaging/domain"
	messagingRepo "recruitbridge-backend/internal/messaging/repository"
	messagingUsecase "recruitbridge-backend/internal/messaging/usecase"
	outreachdomain "recruitbridge-backend/internal/outreach/domain"
	outreachRepo "recruitbridge-backend/internal/outreach/repository"
	outreachUsecase "recruitbridge-backend/internal/outreach/usecase"
	"recruitbridge-backend/pkg/config"
	"recruitbridge-backend/pkg/database"
	"recruitbridge-backend/pkg/mailgun"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&identitydomain.Identity{}, &identitydomain.Mailbox{}, &messagingdomain.Thread{}, &messagingdomain.Message{}, &outreachdomain.OutreachRecord{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	identityRepository := identityRepo.NewGormIdentityRepository(db)
	threadRepository := messagingRepo.NewGormThreadRepository(db)
	messageRepository := messagingRepo.NewGormMessageRepository(db)
	outreachRepository := outreachRepo.NewGormOutreachRepository(db)

	// Initialize Mailgun client (route provisioning, outbound delivery,
	// webhook signature verification)
	var mgClient *mailgun.Client
	if cfg.MailgunAPIKey != "" {
		mgClient = mailgun.NewClient(cfg.MailgunBaseURL, cfg.MailgunAPIKey, cfg.MailDomain, cfg.MailgunSigningKey)
	} else {
		log.Printf("[WARN] MAILGUN_API_KEY not set, mailbox provisioning and outbound send disabled")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(cfg)
	outreachUsecaseInstance := outreachUsecase.NewOutreachUsecase(outreachRepository)

	var routes identityUsecase.RouteProvisioner
	var sender messagingUsecase.MessageSender
	if mgClient != nil {
		routes = mgClient
		sender = mgClient
	}
	identityUsecaseInstance := identityUsecase.NewIdentityUsecase(identityRepository, routes, cfg.MailDomain, cfg.WebhookForwardURL)
	messagingUsecaseInstance := messagingUsecase.NewMessagingUsecase(threadRepository, messageRepository, identityUsecaseInstance, outreachUsecaseInstance, sender)

	// Initialize HTTP handler
	var verifier messagingDelivery.SignatureVerifier
	if mgClient != nil {
		verifier = mgClient
	}
	handler := api.NewHandler(authUsecaseInstance, identityUsecaseInstance, messagingUsecaseInstance, verifier)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
