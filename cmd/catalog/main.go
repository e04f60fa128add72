package main

import (
	"context"
	"errors"
	"tembea/internal/catalog/fetcher"
	"tembea/internal/catalog/handler"
	"tembea/internal/catalog/normalizer"
	"tembea/internal/catalog/service"
	"tembea/internal/catalog/store"
	"tembea/internal/catalog/validator"
	"tembea/pkg/app"
	"tembea/pkg/config"
	"tembea/pkg/kafka"
	kafka_config "tembea/pkg/kafka/config"
	kafka_middleware "tembea/pkg/kafka/middleware"
	"tembea/pkg/locale"
)

const ServiceName = "catalog"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Catalog service")
	serverApp := app.NewApplication(cfg, "tembea_catalog")
	m := serverApp.Metrics()

	ctx, cancel := context.WithCancel(context.Background())
	serverApp.OnShutdown("background-context", func(context.Context) error {
		cancel()
		return nil
	})

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	notifier := initNotifier(ctx, cfg, serverApp)
	catalogStore := store.NewMongoStore(db, notifier, cfg.RequestTimeout, cfg.Log)

	sources := fetcher.DefaultSources()
	liveFeed := fetcher.NewLiveFeed(catalogStore, sources, cfg.LiveRetryMaxBackoff, cfg.Log, m)
	liveFeed.Start(ctx)
	// Stopping the feed ends open event streams so server.Shutdown can finish.
	serverApp.OnDrain("live-feed", liveFeed.Stop)

	catalogFetcher := fetcher.New(catalogStore, liveFeed, cfg.Log, m)
	catalogNormalizer := normalizer.New(locale.NewFormatter(cfg.DisplayLocale), cfg.PlaceholderImageURL)
	catalogService := service.NewCatalogService(catalogFetcher, liveFeed, catalogNormalizer, sources, cfg.Log, m)
	cfg.Log.Info("Catalog service initialized", "database", cfg.MongoDatabaseName, "sources", len(sources))

	serverApp.SetApp(handler.NewCatalogHandler(catalogService, validator.NewSearchValidator(cfg.Log), cfg.Log))
	serverApp.Run()
}

// initNotifier picks the change signal behind live subscriptions. The kafka
// notifier is fed by a consumer on the catalog changes topic.
func initNotifier(ctx context.Context, cfg *config.Config, serverApp *app.Application) store.ChangeNotifier {
	if cfg.ChangeNotifier != config.ChangeNotifierKafka {
		cfg.Log.Info("Live updates driven by MongoDB change streams")
		return store.NewChangeStreamNotifier(cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	notifier := store.NewKafkaNotifier(cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, kafkaCfg.CatalogChangesTopic, kafkaCfg.ConsumerGroupID, notifier.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware(serverApp.Metrics()))

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Catalog change consumer stopped", "error", err)
		}
	}()
	serverApp.OnShutdown("kafka-consumer", func(context.Context) error {
		return consumer.Close()
	})

	cfg.Log.Info("Live updates driven by Kafka", "topic", kafkaCfg.CatalogChangesTopic, "group_id", kafkaCfg.ConsumerGroupID)
	return notifier
}
