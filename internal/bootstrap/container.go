package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/redis/go-redis/v9"

	"rumorcheck-be/internal/bot"
	"rumorcheck-be/internal/config"
	"rumorcheck-be/internal/controller"
	"rumorcheck-be/internal/pkg/logger"
	"rumorcheck-be/internal/service"
	"rumorcheck-be/pkg/analytics"
	"rumorcheck-be/pkg/knowledgebase"
	pkgNats "rumorcheck-be/pkg/nats"
	"rumorcheck-be/pkg/store"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController

	// Background Services (Exposed for main.go to run)
	AnalyticsService service.IAnalyticsService

	// Held for shutdown.
	NatsPublisher *pkgNats.Publisher
	Logger        logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Session storage: Redis when configured, in-process memory otherwise.
	var sessions store.SessionStore
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessions = store.NewRedisSessionStore(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessions = store.NewMemorySessionStore()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 4. Conversation Core
	kbClient := knowledgebase.NewClient(cfg.KnowledgeBase.APIURL, sysLogger)

	contacts := make([]bot.Contact, 0, len(config.VerificationContacts))
	for _, c := range config.VerificationContacts {
		contacts = append(contacts, bot.Contact{Name: c.Name, URI: c.URI})
	}
	conversationBot := bot.New(kbClient, bot.Options{
		SiteURL:              cfg.KnowledgeBase.SiteURL,
		DeepLinkBaseURL:      cfg.KnowledgeBase.LIFFURL,
		FacebookAppID:        cfg.KnowledgeBase.FacebookAppID,
		VerificationContacts: contacts,
	})

	// 5. Services
	reporter := analytics.NewReporter(cfg.Analytics.TopicName, pubSub)
	conversationService := service.NewConversationService(conversationBot, sessions, reporter, sysLogger)
	analyticsService := service.NewAnalyticsService(pubSub, cfg.Analytics.TopicName, natsPub, sysLogger)

	// 6. Platform Adapter
	messagingAPI, err := messaging_api.NewMessagingApiAPI(cfg.Line.ChannelToken)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LINE Messaging API client: %v", err)
	}

	webhookController := controller.NewWebhookController(
		conversationService,
		cfg.Line.ChannelSecret,
		messagingAPI,
		sysLogger,
	)

	return &Container{
		WebhookController: webhookController,
		AnalyticsService:  analyticsService,
		NatsPublisher:     natsPub,
		Logger:            sysLogger,
	}
}
