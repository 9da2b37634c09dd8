package sim

// Params holds the numeric tuning of the vehicle model. Every probability
// and range lives here so tests can pin individual draws to 0 or 1.
type Params struct {
	LaneLengthM float64

	MinSpeedKph      float64 // hard clamp
	MaxSpeedKph      float64 // hard clamp
	InitSpeedLowKph  float64 // business-as-usual sub-range
	InitSpeedHighKph float64
	SpeedJitterKph   float64 // per-tick drift, either direction

	InitChargeLowPct     float64
	InitChargeHighPct    float64
	DrainLowPctPerSec    float64
	DrainHighPctPerSec   float64
	RechargeThresholdPct float64
	RechargeProb         float64 // per tick, only below the threshold
	RechargeLowPct       float64
	RechargeHighPct      float64

	FlipProb     float64 // load toggle on lane completion
	ReassignProb float64 // block re-pick on lane completion
}

// DefaultParams returns the yard's business-as-usual tuning.
func DefaultParams() Params {
	return Params{
		LaneLengthM: 1000,

		MinSpeedKph:      4,
		MaxSpeedKph:      18,
		InitSpeedLowKph:  8,
		InitSpeedHighKph: 14,
		SpeedJitterKph:   1.0,

		InitChargeLowPct:     60,
		InitChargeHighPct:    100,
		DrainLowPctPerSec:    0.01,
		DrainHighPctPerSec:   0.05,
		RechargeThresholdPct: 30,
		RechargeProb:         0.01,
		RechargeLowPct:       70,
		RechargeHighPct:      100,

		FlipProb:     0.5,
		ReassignProb: 0.3,
	}
}
