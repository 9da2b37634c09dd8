package publish

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/models"
)

func TestPointFromSnapshot(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	snap := models.Snapshot{
		Timestamp:  ts,
		AGVID:      "AGV-07",
		YardBlock:  "YB12",
		LaneID:     "L46",
		PositionM:  512.34,
		SpeedKph:   11.58,
		SocPct:     87.3,
		JobID:      "JOB-654321",
		LoadStatus: models.LoadLoaded,
		Mode:       models.ModeBAU,
	}

	point := pointFromSnapshot("agv_telemetry", snap)

	assert.Equal(t, "agv_telemetry", point.Name())
	assert.True(t, point.Time().Equal(ts))

	tags := map[string]string{}
	for _, tag := range point.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{
		"agv_id":      "AGV-07",
		"yard_block":  "YB12",
		"lane_id":     "L46",
		"load_status": "LOADED",
		"mode":        "BAU",
	}, tags)

	fields := map[string]interface{}{}
	for _, field := range point.FieldList() {
		fields[field.Key] = field.Value
	}
	require.Len(t, fields, 4)
	assert.Equal(t, 512.34, fields["position_m"])
	assert.Equal(t, 11.58, fields["speed_kph"])
	assert.Equal(t, 87.3, fields["soc_pct"])
	assert.Equal(t, "JOB-654321", fields["job_id"])
}

func TestNewInflux_RequiresToken(t *testing.T) {
	_, err := NewInflux(config.Config{InfluxURL: "http://localhost:8086"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INFLUX_TOKEN")
}

func TestInfluxPublisher_NameAndMeasurement(t *testing.T) {
	pub, err := NewInflux(config.Config{
		InfluxURL:    "http://localhost:8086",
		InfluxToken:  "test-token",
		InfluxOrg:    "yard-ops",
		InfluxBucket: "agv_telemetry",
		BatchName:    "agv_telemetry",
	})
	require.NoError(t, err)
	defer pub.Close(context.Background())

	assert.Equal(t, config.SinkInflux, pub.Name())
	assert.Equal(t, "agv_telemetry", pub.measurement)
}
