package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobgyani/job-alerts/internal/cache"
	"github.com/jobgyani/job-alerts/internal/clients/jsearch"
	"github.com/jobgyani/job-alerts/internal/clients/mailer"
	"github.com/jobgyani/job-alerts/internal/config"
	"github.com/jobgyani/job-alerts/internal/events"
	"github.com/jobgyani/job-alerts/internal/logger"
	"github.com/jobgyani/job-alerts/internal/metrics"
	"github.com/jobgyani/job-alerts/internal/repositories"
	"github.com/jobgyani/job-alerts/internal/server"
	"github.com/jobgyani/job-alerts/internal/services"
	log "github.com/sirupsen/logrus"
)

func newDocumentStore(ctx context.Context, cfg *config.Config, dbContext *repositories.DbContext) cache.DocumentStore {

	if cfg.Cache.Backend == config.BackendRedis {
		redisClient, err := repositories.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("can't connect to redis: %v", err)
		}
		return repositories.NewRedisDocumentsRepository(redisClient, cfg.Cache.PersistentTTL)
	}

	return repositories.NewDocumentsRepository(dbContext.DB)
}

func subscribeObservers(bus EventBus.Bus) {

	err := bus.Subscribe(events.SearchPerformedTopic, func(e events.SearchPerformed) {
		log.Debugf("search %q served from %v with %v results in %.3fs",
			e.Query, e.Source, e.ResultCount, e.Duration)
	})
	if err != nil {
		log.Fatalf("can't subscribe to search events: %v", err)
	}

	err = bus.Subscribe(events.DigestCompletedTopic, func(e events.DigestCompleted) {
		log.Infof("digest completed in %.2fs: sent %v, skipped %v, failed %v",
			e.Duration, e.Sent, e.Skipped, e.Failed)
	})
	if err != nil {
		log.Fatalf("can't subscribe to digest events: %v", err)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	metrics.Register()

	logger.Setup(ctx, logger.Config{
		Level:      string(cfg.Logger.LogLevel),
		AppName:    cfg.Logger.AppName,
		OutputFile: cfg.Logger.OutputFile,
		LokiURL:    cfg.Logger.LokiURL,
		LokiUser:   cfg.Logger.LokiUser,
		LokiPass:   cfg.Logger.LokiPassword,
	})
	defer logger.Cleanup()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	users := repositories.NewUsersRepository(dbContext.DB)
	history := repositories.NewHistoryRepository(dbContext.DB)

	memory := cache.NewMemory(cfg.Cache.MemoryTTL)
	persistent := cache.NewPersistent(newDocumentStore(ctx, cfg, dbContext), cfg.Cache.PersistentTTL)

	originClient := jsearch.NewClient(cfg.Origin.APIKey)
	if cfg.Origin.MaxRequestsPerSecond > 0 {
		originClient.SetRateLimit(cfg.Origin.MaxRequestsPerSecond)
	}

	mailClient := mailer.NewClient(cfg.Mailer.Endpoint, cfg.Mailer.APIKey, cfg.Mailer.Sender)

	bus := EventBus.New()
	subscribeObservers(bus)

	historyWriter := services.NewHistoryWriter(history, users)
	orchestrator := services.NewSearchOrchestrator(memory, persistent, originClient, historyWriter, bus)
	digest := services.NewDigestScheduler(users, originClient, mailClient, bus, cfg.Digest.Secret)

	if cfg.Digest.CronSpec != "" {
		if err := digest.StartCron(cfg.Digest.CronSpec); err != nil {
			log.Fatalf("can't start digest cron: %v", err)
		}
		defer digest.StopCron()
	}

	srv := server.New(cfg.Server.Port, cfg.Server.RequestTimeout, orchestrator, digest)
	go srv.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	srv.Stop(shutdownCtx)
	log.Info("Services stopped.")
}
