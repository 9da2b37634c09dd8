package models

import "time"

// LoadStatus represents the load state of an AGV
type LoadStatus string

const (
	LoadEmpty  LoadStatus = "EMPTY"
	LoadLoaded LoadStatus = "LOADED"
)

// Toggle returns the opposite load status.
func (s LoadStatus) Toggle() LoadStatus {
	if s == LoadLoaded {
		return LoadEmpty
	}
	return LoadLoaded
}

// IsValidLoadStatus checks if a load status is valid
func IsValidLoadStatus(s LoadStatus) bool {
	switch s {
	case LoadEmpty, LoadLoaded:
		return true
	default:
		return false
	}
}

// ModeBAU tags records emitted under the business-as-usual scenario, the
// only operating mode currently modeled.
const ModeBAU = "BAU"

// Snapshot is one per-tick observation of a single AGV, rendered from the
// vehicle's state and never mutated afterwards.
type Snapshot struct {
	Timestamp  time.Time  `bson:"timestamp" json:"@timestamp"`
	AGVID      string     `bson:"agv_id" json:"agv_id"`
	YardBlock  string     `bson:"yard_block" json:"yard_block"`
	LaneID     string     `bson:"lane_id" json:"lane_id"`
	PositionM  float64    `bson:"position_m" json:"position_m"`
	SpeedKph   float64    `bson:"speed_kph" json:"speed_kph"`
	SocPct     float64    `bson:"soc_pct" json:"soc_pct"`
	JobID      string     `bson:"job_id" json:"job_id"`
	LoadStatus LoadStatus `bson:"load_status" json:"load_status"`
	Mode       string     `bson:"mode" json:"mode"`
}
