package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/lib/pq"

	"appeal/internal/audit"
	"appeal/internal/caregiver"
	caregiverhandler "appeal/internal/caregiver/handler"
	"appeal/internal/catalog"
	"appeal/internal/child"
	childhandler "appeal/internal/child/handler"
	"appeal/internal/encounter"
	encounterhandler "appeal/internal/encounter/handler"
	"appeal/internal/evidence"
	"appeal/internal/i18n"
	"appeal/internal/milestone"
	milestonehandler "appeal/internal/milestone/handler"
	milestonemetrics "appeal/internal/milestone/metrics"
	"appeal/internal/platform/config"
	"appeal/internal/platform/httpserver"
	"appeal/internal/platform/logger"
	"appeal/internal/platform/metrics"
	platformredis "appeal/internal/platform/redis"
	httptransport "appeal/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	appMetrics := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: Postgres when configured, in-memory otherwise.
	var (
		catalogStore   catalog.Store
		childStore     child.Store
		milestoneStore milestone.Store
		encounterStore encounter.Store
		auditStore     audit.Store
		registryTx     child.TxRunner = child.NopTx{}
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("open postgres", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping postgres", "error", err.Error())
			os.Exit(1)
		}
		catalogStore = catalog.NewPostgres(db)
		childStore = child.NewPostgres(db)
		milestoneStore = milestone.NewPostgres(db)
		encounterStore = encounter.NewPostgres(db)
		auditStore = audit.NewPostgres(db)
		registryTx = child.NewPostgresTx(db)
	} else {
		log.Info("no postgres DSN set, using in-memory stores")
		catalogStore = catalog.NewInMemory()
		childStore = child.NewInMemory()
		milestoneStore = milestone.NewInMemory()
		encounterStore = encounter.NewInMemory()
		auditStore = audit.NewInMemory()
	}

	if err := catalog.Seed(ctx, catalogStore); err != nil {
		log.Error("seed catalog", "error", err.Error())
		os.Exit(1)
	}

	// Localization: static tables, cached in Redis when configured.
	var labels i18n.Provider = i18n.NewStatic()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		labels = i18n.NewCachedProvider(labels, redisClient.Client, cfg.Redis.LabelTTL)
	}

	// Audit: always persisted; Kafka mirror when brokers are configured.
	var sinks []audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("connect kafka", "error", err.Error())
			os.Exit(1)
		}
		defer kafkaSink.Close()

		asyncSink := audit.NewAsyncSink(kafkaSink, 1024, log)
		go func() {
			if err := asyncSink.Run(ctx); err != nil {
				log.Error("audit sink stopped", "error", err.Error())
			}
		}()
		sinks = append(sinks, asyncSink)
	}
	publisher := audit.NewPublisher(auditStore, sinks...)

	// Evidence: S3 when configured, in-memory otherwise.
	var evidenceStore evidence.Store
	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			log.Error("load aws config", "error", err.Error())
			os.Exit(1)
		}
		evidenceStore = evidence.NewS3(s3.NewFromConfig(awsCfg), cfg.S3Bucket)
	} else {
		log.Info("no S3 bucket set, holding evidence in memory")
		evidenceStore = evidence.NewInMemory()
	}

	milestones, err := milestone.NewService(milestoneStore, catalogStore, publisher, milestonemetrics.New())
	if err != nil {
		log.Error("build milestone service", "error", err.Error())
		os.Exit(1)
	}
	children, err := child.NewService(childStore, milestones, publisher, registryTx)
	if err != nil {
		log.Error("build child service", "error", err.Error())
		os.Exit(1)
	}
	encounters, err := encounter.NewService(encounterStore, publisher)
	if err != nil {
		log.Error("build encounter service", "error", err.Error())
		os.Exit(1)
	}
	projections, err := caregiver.NewService(children, milestones, encounters, catalogStore, labels)
	if err != nil {
		log.Error("build caregiver service", "error", err.Error())
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.Handlers{
		Registry:    childhandler.New(children, log, appMetrics),
		Milestones:  milestonehandler.New(milestones, evidenceStore, log),
		Encounters:  encounterhandler.New(encounters, log),
		Projections: caregiverhandler.New(projections, log),
	}, log, appMetrics)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting appeal server", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
