package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ukydev/yard-telemetry/internal/models"
)

// Fleet owns a fixed set of vehicles and advances them in lockstep. It
// holds no state of its own beyond the vehicle references.
type Fleet struct {
	vehicles []*Vehicle
}

// NewFleet creates size vehicles named AGV-01 upward. Each vehicle gets
// its own source seeded at an offset from seed, so a seeded fleet replays
// identically while vehicles stay independently owned. Seed 0 derives from
// the clock, re-randomizing every run.
func NewFleet(size int, topo Topology, p Params, seed int64) *Fleet {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := &Fleet{vehicles: make([]*Vehicle, 0, size)}
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("AGV-%02d", i+1)
		rng := rand.New(rand.NewSource(seed + int64(i)))
		f.vehicles = append(f.vehicles, NewVehicle(id, topo, p, rng))
	}
	return f
}

// Tick advances every vehicle by dt seconds and renders one snapshot per
// vehicle, in creation order. Always returns exactly Size() records.
func (f *Fleet) Tick(dt float64, now time.Time) []models.Snapshot {
	batch := make([]models.Snapshot, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		v.Advance(dt)
		batch = append(batch, v.Snapshot(now))
	}
	return batch
}

// Size returns the number of vehicles in the fleet.
func (f *Fleet) Size() int {
	return len(f.vehicles)
}
