package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/publish"
	"github.com/ukydev/yard-telemetry/internal/sim"
)

func main() {
	// Optional .env for local runs; containers set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("log_level", cfg.LogLevel).Warn("Unknown log level, keeping default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pub, err := publish.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up sink")
	}

	fleet := sim.NewFleet(cfg.FleetSize, sim.DefaultTopology(), sim.DefaultParams(), cfg.Seed)

	log.WithFields(log.Fields{
		"fleet_size": fleet.Size(),
		"sink":       pub.Name(),
		"batch_name": cfg.BatchName,
		"tick":       cfg.TickInterval(),
		"duration":   cfg.RunDuration(),
	}).Info("Starting yard simulation")

	runner := sim.NewRunner(fleet, pub, sim.RunnerOptions{
		TickInterval: cfg.TickInterval(),
		Duration:     cfg.RunDuration(),
	})
	ticks := runner.Run(ctx)

	if err := pub.Close(context.Background()); err != nil {
		log.WithError(err).Warn("Failed to close sink cleanly")
	}

	log.WithField("ticks", ticks).Info("Simulation finished")
}
