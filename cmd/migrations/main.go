package main

import (
	"context"

	migrations "seatbook/internal/migrations/mongo"
	"seatbook/pkg/config"
)

const ServiceName = "migrations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	if err := migrations.Run(ctx, cfg); err != nil {
		cfg.Log.Fatal("Migrations failed", "error", err)
	}
}
