package sim

// Topology maps yard blocks to the lanes they contain. Blocks carries the
// pick order separately because map iteration order varies run to run,
// which would break seeded reproducibility.
type Topology struct {
	Blocks []string
	Lanes  map[string][]string
}

// DefaultTopology returns the yard layout: three blocks with two transfer
// lanes each.
func DefaultTopology() Topology {
	return Topology{
		Blocks: []string{"YB10", "YB11", "YB12"},
		Lanes: map[string][]string{
			"YB10": {"L41", "L42"},
			"YB11": {"L43", "L44"},
			"YB12": {"L45", "L46"},
		},
	}
}
