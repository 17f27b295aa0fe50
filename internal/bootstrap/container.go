package bootstrap

import (
	"context"
	"log"

	"workpackage-be/internal/config"
	"workpackage-be/internal/controller"
	"workpackage-be/internal/entity"
	"workpackage-be/internal/handler"
	"workpackage-be/internal/pkg/logger"
	"workpackage-be/internal/pkg/requestctx"
	"workpackage-be/internal/repository/implementation"
	"workpackage-be/internal/repository/memory"
	"workpackage-be/internal/repository/rediscache"
	"workpackage-be/internal/repository/specification"
	"workpackage-be/internal/repository/unitofwork"
	"workpackage-be/internal/service"
	"workpackage-be/internal/websocket"
	"workpackage-be/pkg/draft"
	"workpackage-be/pkg/events"
	"workpackage-be/pkg/filter"
	pktNats "workpackage-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	WorkPackageCreateController controller.IWorkPackageCreateController

	// Background services, started by main.
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	c := &Container{Logger: sysLogger}

	// In-process draft lifecycle events
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// NATS
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	var eventSubscriber service.EventSubscriber
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		eventSubscriber = natsSub
		c.closers = append(c.closers, natsSub.Close)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	c.closers = append(c.closers, func() { rdb.Close() })

	// Drafts
	var store draft.Store
	switch cfg.Drafts.Store {
	case "redis":
		store = rediscache.NewDraftRepository(rdb, cfg.Drafts.TTL)
	default:
		store = memory.NewDraftRepository(cfg.Drafts.TTL, cfg.Drafts.CleanupInterval)
	}

	workPackageCache := rediscache.NewWorkPackageCache(rdb, cfg.Drafts.CacheTTL,
		func(ctx context.Context, id uuid.UUID) (*entity.WorkPackage, error) {
			return uowFactory.NewUnitOfWork(ctx).WorkPackageRepository().FindOne(ctx, specification.ByID{ID: id})
		},
		sysLogger,
	)

	defaults := filter.NewDefaults(service.NewAllowedValues(uowFactory), requestctx.UserID)
	resolver := draft.NewResolver(service.NewDraftFactory(uowFactory), defaults, sysLogger)

	publisherService := service.NewPublisherService(cfg.App.DraftEventsTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.DraftEventsTopic, uowFactory, workPackageCache, sysLogger)

	createService := service.NewWorkPackageCreateService(
		uowFactory,
		store,
		resolver,
		workPackageCache,
		publisherService,
		eventPublisher,
		cfg.Drafts.ParentWait,
		sysLogger,
	)
	rootService := service.NewRootService(uowFactory)

	// Notifications
	notifLogger := logger.NewIsolatedLogger(cfg.App.NotificationLog)
	c.WebSocketHub = websocket.NewHub(rdb, notifLogger)
	notifRepo := implementation.NewNotificationRepository(db)
	c.NotificationService = service.NewNotificationService(notifRepo, eventSubscriber, eventPublisher, c.WebSocketHub, notifLogger)
	c.NotificationHandler = handler.NewNotificationHandler(c.NotificationService, c.WebSocketHub, cfg.Auth.JWTSecret, notifLogger)

	c.WorkPackageCreateController = controller.NewWorkPackageCreateController(
		createService,
		rootService,
		c.NotificationService,
		cfg.Auth.JWTSecret,
		cfg.Auth.LoginPath,
		cfg.IsProduction(),
		sysLogger,
	)

	c.closers = append(c.closers, func() {
		sysLogger.Sync()
		notifLogger.Sync()
	})
	return c
}

// Start runs the background services until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	c.NotificationService.Start(ctx)
	return c.ConsumerService.Consume(ctx)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
