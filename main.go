// Package main provides the main entry point for the collection operations platform
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cobraops/cobra-core/app/handlers"
	"github.com/cobraops/cobra-core/app/router"
	"github.com/cobraops/cobra-core/app/scheduler"
	"github.com/cobraops/cobra-core/app/services"
	businessflow "github.com/cobraops/cobra-core/business_flow"
	"github.com/cobraops/cobra-core/config"
	"github.com/cobraops/cobra-core/models"
	"github.com/cobraops/cobra-core/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	stopFuncs []func()
}

func main() {
	log.Println("Starting Cobra Core application...")

	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// migrateDatabase keeps the schema aligned with the model definitions
func migrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Debtor{},
		&models.DebtorEvent{},
		&models.PhoneLink{},
		&models.ChatMessage{},
		&models.CostEntry{},
		&models.PendingMessage{},
		&models.MessageSchedule{},
		&models.DebtImage{},
	)
}

// initializeCache initializes the Redis client and verifies connectivity.
// The window cache degrades to direct DB reads when Redis is unreachable,
// so a failure here is logged but not fatal.
func initializeCache(cfg config.CacheConfig) *redis.Client {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable, schedule caching disabled: %v", err)
		_ = rc.Close()
		return nil
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisAddr(), cfg.DB)
	return rc
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := migrateDatabase(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	rc := initializeCache(cfg.Cache)

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	debtorRepo := repository.NewDebtorRepository(db)
	phoneLinkRepo := repository.NewPhoneLinkRepository(db)
	chatRepo := repository.NewChatMessageRepository(db)
	costRepo := repository.NewCostEntryRepository(db)
	pendingRepo := repository.NewPendingMessageRepository(db)
	scheduleRepo := repository.NewMessageScheduleRepository(db)
	debtImageRepo := repository.NewDebtImageRepository(db)

	// Provider services
	whatsappSvc := services.NewWhatsAppService(&cfg.WhatsApp)
	smsSvc := services.NewSMSService(&cfg.SMS)
	voiceSvc := services.NewVoiceService(&cfg.Voice)
	emailSvc := services.NewSMTPEmailService(&cfg.Email)
	agentSvc := services.NewAgentService(&cfg.Agent)
	ocrSvc := services.NewOCRService(&cfg.OCR)

	// Channel senders
	senders := &businessflow.ChannelSenders{
		WhatsApp: businessflow.NewWhatsAppSender(whatsappSvc, chatRepo, costRepo),
		SMS:      businessflow.NewSMSSender(smsSvc, chatRepo, costRepo),
		Call:     businessflow.NewCallSender(voiceSvc, chatRepo, costRepo),
		Email:    businessflow.NewEmailSender(emailSvc, chatRepo, costRepo, "Aviso de cobranza"),
	}

	// Business flows
	scheduleFlow := businessflow.NewScheduleWindowFlow(scheduleRepo, rc, cfg.Cache.Prefix)
	resolver := businessflow.NewEntityResolverFlow(debtorRepo, phoneLinkRepo)
	pendingFlow := businessflow.NewPendingQueueFlow(pendingRepo, phoneLinkRepo, debtorRepo, scheduleFlow, senders)
	contextFlow := businessflow.NewConversationContextFlow(chatRepo)
	agentFlow := businessflow.NewCollectionAgentFlow(agentSvc, debtorRepo)
	campaignFlow := businessflow.NewCampaignFlow(companyRepo, debtorRepo, resolver, scheduleFlow, pendingFlow, senders, cfg.Platform.ServiceNumber)
	inboundFlow := businessflow.NewInboundFlow(phoneLinkRepo, debtorRepo, chatRepo, debtImageRepo, contextFlow, agentFlow, senders, whatsappSvc, ocrSvc, voiceSvc)
	scheduleConfigFlow := businessflow.NewScheduleConfigFlow(companyRepo, scheduleRepo, scheduleFlow)
	costFlow := businessflow.NewCostFlow(companyRepo, costRepo)

	// Pending queue drain job
	drain := scheduler.NewPendingScheduler(pendingFlow, cfg.Scheduler.DrainInterval)
	stopFuncs = append(stopFuncs, drain.Start(context.Background()))

	// Handlers and router
	campaignHandler := handlers.NewCampaignHandler(campaignFlow)
	webhookHandler := handlers.NewWebhookHandler(inboundFlow)
	scheduleHandler := handlers.NewScheduleHandler(scheduleConfigFlow)
	costHandler := handlers.NewCostHandler(costFlow)

	r := router.NewFiberRouter(campaignHandler, webhookHandler, scheduleHandler, costHandler)

	return &Application{
		router:    r,
		config:    cfg,
		stopFuncs: stopFuncs,
	}, nil
}
