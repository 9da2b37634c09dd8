package publish

import (
	"context"
	"errors"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/models"
)

// InfluxPublisher writes each snapshot as one point, a whole batch per
// write call through the blocking API.
type InfluxPublisher struct {
	client      influxdb2.Client
	write       influxdb2_api.WriteAPIBlocking
	measurement string
}

// NewInflux builds the publisher from the Influx settings in cfg.
func NewInflux(cfg config.Config) (*InfluxPublisher, error) {
	if cfg.InfluxToken == "" {
		return nil, errors.New("INFLUX_TOKEN must be set for the influx sink")
	}
	client := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	return &InfluxPublisher{
		client:      client,
		write:       client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		measurement: cfg.BatchName,
	}, nil
}

// Name returns the sink name.
func (p *InfluxPublisher) Name() string { return config.SinkInflux }

// Publish converts the batch to points and writes them in one call.
func (p *InfluxPublisher) Publish(ctx context.Context, batch []models.Snapshot) error {
	if len(batch) == 0 {
		return nil
	}
	points := make([]*influxdb2_write.Point, len(batch))
	for i, snap := range batch {
		points[i] = pointFromSnapshot(p.measurement, snap)
	}
	return p.write.WritePoint(ctx, points...)
}

// Close shuts the client down.
func (p *InfluxPublisher) Close(ctx context.Context) error {
	p.client.Close()
	return nil
}

// pointFromSnapshot maps the vehicle's identity onto tags and its readings
// onto fields.
func pointFromSnapshot(measurement string, snap models.Snapshot) *influxdb2_write.Point {
	return influxdb2.NewPointWithMeasurement(measurement).
		AddTag("agv_id", snap.AGVID).
		AddTag("yard_block", snap.YardBlock).
		AddTag("lane_id", snap.LaneID).
		AddTag("load_status", string(snap.LoadStatus)).
		AddTag("mode", snap.Mode).
		AddField("position_m", snap.PositionM).
		AddField("speed_kph", snap.SpeedKph).
		AddField("soc_pct", snap.SocPct).
		AddField("job_id", snap.JobID).
		SetTime(snap.Timestamp)
}
