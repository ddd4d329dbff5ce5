package main

import (
	"fmt"
	"log"
	"net"

	"github.com/gin-gonic/gin"

	"beacon-chat/config"
	"beacon-chat/internal/handler"
	"beacon-chat/internal/proxy"
	"beacon-chat/internal/repository"
	"beacon-chat/internal/scheduler"
	"beacon-chat/internal/services"
	"beacon-chat/internal/store"
	"beacon-chat/pkg/events"
	"beacon-chat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == "release" {
		mode = logger.ProductionMode
		gin.SetMode(gin.ReleaseMode)
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	st, err := store.Open(cfg.StatePath)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}

	userRepo := repository.NewUserRepository(st)
	messageRepo := repository.NewMessageRepository(st)
	containerRepo := repository.NewContainerRepository(st)
	notifRepo := repository.NewNotificationRepository(st)

	var publisher events.Publisher
	if cfg.RedisEnabled {
		addr := net.JoinHostPort(cfg.RedisHost, cfg.RedisPort)
		publisher = events.NewRedisBroker(addr, cfg.RedisPassword, cfg.RedisDB)
		l.Infof("notification events publishing to redis at %s", addr)
	}

	access := proxy.NewAccessControl(userRepo, containerRepo)
	sched := scheduler.New(l)

	notifier := services.NewNotificationService(notifRepo, userRepo, containerRepo, publisher, l)
	messages := services.NewMessageService(messageRepo, containerRepo, access, notifier, sched, l)
	feed := services.NewFeedService(messageRepo, containerRepo, access)
	channels := services.NewChannelService(containerRepo, userRepo, notifier)
	dms := services.NewDMService(containerRepo, userRepo, notifier)
	standups := services.NewStandupService(containerRepo, userRepo, messages, sched, l)
	system := services.NewSystemService(st, sched, l)
	auth := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiryMin, userRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r, handler.Handlers{
		Messages:      handler.NewMessageHandler(messages, feed),
		Notifications: handler.NewNotificationHandler(notifier),
		Search:        handler.NewSearchHandler(feed),
		Containers:    handler.NewContainerHandler(channels, dms),
		Standups:      handler.NewStandupHandler(standups),
		System:        handler.NewSystemHandler(system),
	}, auth, l)

	l.Infof("starting server on port %s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
