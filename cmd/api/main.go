package main

import (
	"seatbook/internal/auth"
	"seatbook/internal/availability"
	bookinghandler "seatbook/internal/bookings/handler"
	bookingrepo "seatbook/internal/bookings/repository"
	bookingservice "seatbook/internal/bookings/service"
	bookingvalidator "seatbook/internal/bookings/validator"
	holidayhandler "seatbook/internal/holidays/handler"
	holidayrepo "seatbook/internal/holidays/repository"
	holidayservice "seatbook/internal/holidays/service"
	internhandler "seatbook/internal/interns/handler"
	internrepo "seatbook/internal/interns/repository"
	internservice "seatbook/internal/interns/service"
	"seatbook/internal/notify"
	"seatbook/pkg/app"
	"seatbook/pkg/config"
	"seatbook/pkg/kafka"
	kafka_config "seatbook/pkg/kafka/config"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	notifier := initNotifier(cfg)
	authmw := auth.NewMiddleware(cfg.JWTSecret, cfg.Log)

	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	holidayRepo := holidayrepo.NewMongoHolidayRepository(cfg)
	internRepo := internrepo.NewMongoInternRepository(cfg)

	checker := availability.NewChecker(holidayRepo, bookingRepo)

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		internRepo,
		checker,
		bookingvalidator.NewBookingValidator(cfg.SeatCount),
		notifier,
		cfg.Log,
	)
	holidayService := holidayservice.NewHolidayService(holidayRepo, cfg.Log)
	internService := internservice.NewInternService(internRepo, cfg)

	cfg.Log.Info("Services initialized",
		"database", cfg.MongoDatabaseName,
		"seat_count", cfg.SeatCount,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		bookinghandler.NewBookingHandler(bookingService, authmw, cfg.Log),
		holidayhandler.NewHolidayHandler(holidayService, authmw, cfg.Log),
		internhandler.NewInternHandler(internService, authmw, cfg.Log),
	)
	serverApp.Run()
}

func initNotifier(cfg *config.Config) notify.Notifier {
	if !cfg.NotificationsEnabled {
		cfg.Log.Info("Notifications disabled, booking events go to the log only")
		return notify.NewLogNotifier(cfg.Log)
	}

	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, notify.TopicBookingEvents, notify.TopicBookingDLQ)
	if err != nil {
		cfg.Log.Error("Failed to initialize event producer, falling back to log notifier", "error", err)
		return notify.NewLogNotifier(cfg.Log)
	}

	cfg.Log.Info("Kafka notifier initialized",
		"topic", notify.TopicBookingEvents,
		"brokers", kafkaCfg.Brokers,
	)
	return notify.NewKafkaNotifier(producer, ServiceName, cfg.Log)
}
