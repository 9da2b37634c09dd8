package sim

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/yard-telemetry/internal/models"
)

// Publisher is the slice of the publishing layer the runner needs: ship
// one batch, say whether it worked.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, batch []models.Snapshot) error
}

// RunnerOptions configures the driver loop.
type RunnerOptions struct {
	TickInterval   time.Duration
	Duration       time.Duration // <= 0 means run until the context is canceled
	PublishTimeout time.Duration // defaults to 10s
}

// Runner drives the fleet on a fixed cadence and hands every batch to the
// publisher. Publishing is fire-and-forget: a failed batch is logged and
// dropped, never retried, and vehicle state is never rolled back.
type Runner struct {
	fleet *Fleet
	pub   Publisher
	opts  RunnerOptions
}

// NewRunner wires a fleet to a publisher.
func NewRunner(fleet *Fleet, pub Publisher, opts RunnerOptions) *Runner {
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 10 * time.Second
	}
	return &Runner{fleet: fleet, pub: pub, opts: opts}
}

// Run ticks until the configured duration elapses or ctx is canceled and
// returns the number of completed ticks. The duration is checked against
// the monotonic clock at tick boundaries, never mid-tick.
func (r *Runner) Run(ctx context.Context) int {
	ticker := time.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()

	dt := r.opts.TickInterval.Seconds()
	start := time.Now()
	ticks := 0

	for {
		select {
		case <-ctx.Done():
			return ticks
		case <-ticker.C:
			batch := r.fleet.Tick(dt, time.Now())
			r.publish(ctx, batch)
			ticks++
			if r.opts.Duration > 0 && time.Since(start) >= r.opts.Duration {
				return ticks
			}
		}
	}
}

func (r *Runner) publish(ctx context.Context, batch []models.Snapshot) {
	pctx, cancel := context.WithTimeout(ctx, r.opts.PublishTimeout)
	defer cancel()

	if err := r.pub.Publish(pctx, batch); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"sink":       r.pub.Name(),
			"batch_size": len(batch),
		}).Error("Failed to publish batch")
		return
	}
	log.WithFields(log.Fields{
		"sink":       r.pub.Name(),
		"batch_size": len(batch),
	}).Debug("Published batch")
}
