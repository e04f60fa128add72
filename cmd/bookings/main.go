package main

import (
	"context"
	"tembea/internal/bookings/handler"
	"tembea/internal/bookings/repository"
	"tembea/internal/bookings/service"
	"tembea/internal/bookings/validator"
	"tembea/pkg/app"
	"tembea/pkg/config"
	"tembea/pkg/kafka"
	kafka_config "tembea/pkg/kafka/config"
	kafka_middleware "tembea/pkg/kafka/middleware"
	"tembea/pkg/metrics"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.JWTSecret == "" {
		cfg.Log.Fatal("JWT_SECRET is required for the bookings service")
	}
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Bookings service")
	serverApp := app.NewApplication(cfg, "tembea_bookings")

	publisher := initPublisher(cfg, serverApp)
	bookingService := initServices(cfg, publisher, serverApp.Metrics())
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log), app.WithIdentity())
	serverApp.Run()
}

// initPublisher returns nil when Kafka is disabled so the service skips events.
func initPublisher(cfg *config.Config, serverApp *app.Application) service.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware(serverApp.Metrics()))

	serverApp.OnShutdown("kafka-producer", func(context.Context) error {
		return producer.Close()
	})
	return producer
}

func initServices(cfg *config.Config, publisher service.Publisher, m *metrics.Metrics) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		publisher,
		m,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
