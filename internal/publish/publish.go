// Package publish ships snapshot batches to the configured destination
// store. Every backend transmits a batch as one unit and reports
// transport-level failures; none of them retries.
package publish

import (
	"context"
	"fmt"

	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/models"
)

// Publisher is implemented by every sink backend.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, batch []models.Snapshot) error
	Close(ctx context.Context) error
}

// New creates the publisher selected by cfg.Sink. Construction errors
// (unreachable store, missing credentials, unknown sink) are fatal to the
// caller; no ticks should run against a publisher that never existed.
func New(ctx context.Context, cfg config.Config) (Publisher, error) {
	switch cfg.Sink {
	case config.SinkElastic:
		return NewElastic(cfg)
	case config.SinkMongo:
		return NewMongo(ctx, cfg)
	case config.SinkInflux:
		return NewInflux(cfg)
	case config.SinkMQTT:
		return NewMQTT(cfg)
	case config.SinkFile:
		return NewFile(cfg)
	default:
		return nil, fmt.Errorf("unknown sink type: %s", cfg.Sink)
	}
}
