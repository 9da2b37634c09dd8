package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ukydev/yard-telemetry/internal/models"
)

// Vehicle is one simulated AGV. Every random draw flows through the
// vehicle's own source, so a fleet built from seeded sources replays the
// same trace and vehicles stay safe to advance in parallel.
type Vehicle struct {
	id    string
	block string
	lane  string

	positionM float64
	speedKph  float64
	chargePct float64
	jobID     string
	load      models.LoadStatus

	topo Topology
	p    Params
	rng  *rand.Rand
}

// NewVehicle creates a vehicle with randomized initial state: a uniform
// block and lane, a position anywhere along the lane, speed and charge in
// their business-as-usual sub-ranges, and a fresh job.
func NewVehicle(id string, topo Topology, p Params, rng *rand.Rand) *Vehicle {
	v := &Vehicle{id: id, topo: topo, p: p, rng: rng}
	v.block = choice(rng, topo.Blocks)
	v.lane = choice(rng, topo.Lanes[v.block])
	v.positionM = uniform(rng, 0, p.LaneLengthM)
	v.speedKph = uniform(rng, p.InitSpeedLowKph, p.InitSpeedHighKph)
	v.chargePct = uniform(rng, p.InitChargeLowPct, p.InitChargeHighPct)
	v.jobID = v.newJobID()
	v.load = models.LoadEmpty
	if rng.Intn(2) == 1 {
		v.load = models.LoadLoaded
	}
	return v
}

// ID returns the vehicle's stable identifier.
func (v *Vehicle) ID() string { return v.id }

// Advance moves the vehicle through one tick of dt seconds. The draw order
// is fixed: speed jitter, travel, lane completion, drain, recharge.
func (v *Vehicle) Advance(dt float64) {
	v.speedKph += uniform(v.rng, -v.p.SpeedJitterKph, v.p.SpeedJitterKph)
	if v.speedKph < v.p.MinSpeedKph {
		v.speedKph = v.p.MinSpeedKph
	}
	if v.speedKph > v.p.MaxSpeedKph {
		v.speedKph = v.p.MaxSpeedKph
	}

	v.positionM += v.speedKph * 1000 / 3600 * dt
	if v.positionM >= v.p.LaneLengthM {
		v.completeLane()
	}

	// Charge has no floor; it keeps drifting down until a recharge draw
	// wins. The recharge draw is consumed only below the threshold.
	v.chargePct -= uniform(v.rng, v.p.DrainLowPctPerSec, v.p.DrainHighPctPerSec) * dt
	if v.chargePct < v.p.RechargeThresholdPct && v.rng.Float64() < v.p.RechargeProb {
		v.chargePct = uniform(v.rng, v.p.RechargeLowPct, v.p.RechargeHighPct)
	}
}

// completeLane handles the end of a traversal: the haul is finished, a new
// job starts at the head of a lane. The load toggle and the block re-pick
// are independent draws.
func (v *Vehicle) completeLane() {
	v.positionM = 0
	v.jobID = v.newJobID()
	if v.rng.Float64() < v.p.FlipProb {
		v.load = v.load.Toggle()
	}
	if v.rng.Float64() < v.p.ReassignProb {
		v.block = choice(v.rng, v.topo.Blocks)
		v.lane = choice(v.rng, v.topo.Lanes[v.block])
	}
}

// Snapshot renders the current state for publication, stamping now in UTC.
// Position and speed round to 2 decimals, charge to 1.
func (v *Vehicle) Snapshot(now time.Time) models.Snapshot {
	return models.Snapshot{
		Timestamp:  now.UTC(),
		AGVID:      v.id,
		YardBlock:  v.block,
		LaneID:     v.lane,
		PositionM:  roundTo(v.positionM, 2),
		SpeedKph:   roundTo(v.speedKph, 2),
		SocPct:     roundTo(v.chargePct, 1),
		JobID:      v.jobID,
		LoadStatus: v.load,
		Mode:       models.ModeBAU,
	}
}

func (v *Vehicle) newJobID() string {
	return fmt.Sprintf("JOB-%d", 100000+v.rng.Intn(900000))
}

// uniform draws from [low, high).
func uniform(r *rand.Rand, low, high float64) float64 {
	return low + r.Float64()*(high-low)
}

// choice picks one element uniformly.
func choice(r *rand.Rand, s []string) string {
	return s[r.Intn(len(s))]
}

// roundTo rounds x to the given number of decimal places.
func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
