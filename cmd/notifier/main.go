package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"seatbook/internal/notify"
	"seatbook/pkg/config"
	"seatbook/pkg/kafka"
	kafka_config "seatbook/pkg/kafka/config"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "seatbook-notifier"
)

// The notifier drains the booking event stream and dispatches one email per
// event. Mail transport is pluggable; the default dispatcher writes the
// rendered message to the log.
func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg := kafka_config.Load()

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		notify.TopicBookingEvents,
		consumerGroup,
		notify.TopicBookingDLQ,
		handleBookingEvent(cfg),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize consumer", "error", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Notifier started",
		"topic", notify.TopicBookingEvents,
		"group", consumerGroup,
		"brokers", kafkaCfg.Brokers,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Fatal("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier stopped")
}

func handleBookingEvent(cfg *config.Config) kafka.MessageHandler {
	return func(_ context.Context, msg kafka.Message) error {
		var event notify.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			// Undecodable payloads can never succeed, let them go to the DLQ.
			return kafka.NewPermanentError("decode booking event", err)
		}

		email, err := notify.RenderEmail(msg.GetEventType(), event)
		if err != nil {
			return kafka.NewPermanentError("render email", err)
		}

		cfg.Log.Info("Email dispatched",
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"to", email.To,
			"subject", email.Subject,
		)
		cfg.Log.Debug("Email body", "body", email.Body)
		return nil
	}
}
