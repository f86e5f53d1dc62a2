// cmd/extractor-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"requirement-extractor/internal/api"
	"requirement-extractor/internal/common/camunda"
	"requirement-extractor/internal/common/config"
	"requirement-extractor/internal/common/database"
	commonhttp "requirement-extractor/internal/common/http"
	"requirement-extractor/internal/common/logger"
	"requirement-extractor/internal/common/observability"
	"requirement-extractor/internal/extraction/cache"
	"requirement-extractor/internal/extraction/keywords"
	"requirement-extractor/internal/extraction/orchestrator"
	"requirement-extractor/internal/extraction/remote"
	"requirement-extractor/internal/store/apps"
	"requirement-extractor/internal/store/search"

	er "requirement-extractor/internal/workers/requirements/extract-requirements"
	sga "requirement-extractor/internal/workers/requirements/save-generated-app"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, logger.Output{
		Path:       cfg.Logging.Output,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	log.Info("Starting extractor manager...", map[string]interface{}{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Keyword table ---
	table := keywords.Default()
	if cfg.Extraction.KeywordTablePath != "" {
		table, err = keywords.Load(cfg.Extraction.KeywordTablePath)
		if err != nil {
			zapLog.Fatal("keyword table load failed", zap.String("path", cfg.Extraction.KeywordTablePath), zap.Error(err))
		}
	}
	log.Info("keyword table loaded", map[string]interface{}{
		"version":    table.Version(),
		"archetypes": len(table.Archetypes()),
	})

	orchOpts := []orchestrator.Option{orchestrator.WithObservability(obs)}
	serverOpts := []api.Option{}

	// --- Remote extraction ---
	rc := cfg.Extraction.Remote
	switch {
	case !rc.Enabled:
		log.Info("remote extraction disabled, using rule-based extraction", nil)
	case remote.IsPlaceholderKey(rc.APIKey):
		log.Warn("remote extraction API key is not configured, using rule-based extraction", map[string]interface{}{
			"provider": rc.Provider,
		})
	default:
		completer, err := remote.NewCompleter(remote.ProviderConfig{
			Provider: rc.Provider,
			BaseURL:  rc.BaseURL,
			APIKey:   rc.APIKey,
			Options: remote.Options{
				Model:       rc.Model,
				MaxTokens:   rc.MaxTokens,
				Temperature: &rc.Temperature,
			},
		}, commonhttp.NewClient(0))
		if err != nil {
			zapLog.Fatal("remote extraction setup failed", zap.Error(err))
		}
		orchOpts = append(orchOpts, orchestrator.WithRemote(remote.NewAdapter(completer)))
		log.Info("remote extraction enabled", map[string]interface{}{
			"provider": completer.Name(),
			"model":    rc.Model,
		})
	}

	// --- Redis result cache with retry ---
	if cfg.Database.Redis.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			redis = database.NewRedis(cfg.Database.Redis)
			if err := redis.Ping(ctx); err != nil {
				redis.Close()
				return err
			}
			return nil
		}, 10, 2*time.Second, log, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()

		orchOpts = append(orchOpts, orchestrator.WithCache(cache.New(redis.Client, config.GetDuration(cfg.Extraction.CacheTTL))))
		serverOpts = append(serverOpts, api.WithHealthCheck("redis", redis.Ping))
		log.Info("Redis connected successfully", nil)
	}

	extractor := orchestrator.New(orchestrator.Config{
		MaxDescriptionLength: cfg.Extraction.MaxDescriptionLength,
		RemoteTimeout:        config.GetDuration(rc.Timeout),
	}, table, log, orchOpts...)

	// --- PostgreSQL app store with retry ---
	var store *apps.Store
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				pg.Close()
				return err
			}
			return nil
		}, 15, 2*time.Second, log, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		store = apps.NewStore(pg.DB)
		if err := store.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("app schema setup failed", zap.Error(err))
		}
		serverOpts = append(serverOpts, api.WithAppStore(store), api.WithHealthCheck("postgres", pg.Ping))
		log.Info("PostgreSQL connected successfully", nil)
	}

	// --- Elasticsearch app index with retry ---
	var index *search.Index
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}

		index = search.New(esClient.Client, cfg.Database.Elasticsearch.Index)
		if err := index.EnsureIndex(ctx); err != nil {
			zapLog.Fatal("search index setup failed", zap.Error(err))
		}
		serverOpts = append(serverOpts, api.WithSearch(index), api.WithHealthCheck("elasticsearch", esClient.Ping))
		log.Info("Elasticsearch connected successfully", map[string]interface{}{"index": index.Name()})
	}

	// --- Zeebe workers with retry ---
	var jobWorkers []worker.JobWorker
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClient(cfg.Camunda)
			if err != nil {
				return err
			}
			if err := zeebe.HealthCheck(ctx); err != nil {
				zeebe.Close()
				return err
			}
			return nil
		}, 10, 2*time.Second, log, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		serverOpts = append(serverOpts, api.WithHealthCheck("zeebe", zeebe.HealthCheck))
		log.Info("Zeebe client connected successfully", nil)

		erCfg := config.GetWorkerConfig(cfg, er.TaskType)
		erHandler := er.NewHandler(&er.Config{Timeout: config.GetDuration(erCfg.Timeout)}, extractor, obs, log)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebe.Zeebe(), er.TaskType, erCfg,
			camunda.Instrument(er.TaskType, erHandler.Handle, obs), log))

		sgaCfg := config.GetWorkerConfig(cfg, sga.TaskType)
		if store == nil {
			log.Warn("worker requires postgres, not starting", map[string]interface{}{"taskType": sga.TaskType})
		} else {
			var indexer sga.Indexer
			if index != nil {
				indexer = index
			}
			sgaHandler := sga.NewHandler(&sga.Config{Timeout: config.GetDuration(sgaCfg.Timeout)}, store, indexer, obs, log)
			jobWorkers = append(jobWorkers, camunda.StartWorker(zeebe.Zeebe(), sga.TaskType, sgaCfg,
				camunda.Instrument(sga.TaskType, sgaHandler.Handle, obs), log))
		}
	}

	// --- HTTP API, health & metrics ---
	server := api.NewServer(api.Options{
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, extractor, log, serverOpts...)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range jobWorkers {
		if w != nil {
			w.Close()
			w.AwaitClose()
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", map[string]interface{}{"error": err.Error()})
	}

	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
		}
	}

	log.Info("Extractor manager stopped gracefully", nil)
}
