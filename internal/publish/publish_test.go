package publish

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/models"
)

// Every backend must satisfy the Publisher interface.
var (
	_ Publisher = (*ElasticPublisher)(nil)
	_ Publisher = (*MongoPublisher)(nil)
	_ Publisher = (*InfluxPublisher)(nil)
	_ Publisher = (*MQTTPublisher)(nil)
	_ Publisher = (*FilePublisher)(nil)
)

// testBatch builds n deterministic snapshots.
func testBatch(n int) []models.Snapshot {
	batch := make([]models.Snapshot, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, models.Snapshot{
			Timestamp:  time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
			AGVID:      fmt.Sprintf("AGV-%02d", i+1),
			YardBlock:  "YB10",
			LaneID:     "L41",
			PositionM:  512.34,
			SpeedKph:   11.58,
			SocPct:     87.3,
			JobID:      "JOB-123456",
			LoadStatus: models.LoadEmpty,
			Mode:       models.ModeBAU,
		})
	}
	return batch
}

func TestNew_FileSink(t *testing.T) {
	cfg := config.Config{
		Sink:      config.SinkFile,
		BatchName: "agv_telemetry",
		FilePath:  filepath.Join(t.TempDir(), "out.ndjson"),
	}

	pub, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer pub.Close(context.Background())

	assert.IsType(t, &FilePublisher{}, pub)
	assert.Equal(t, config.SinkFile, pub.Name())
}

func TestNew_UnknownSink(t *testing.T) {
	_, err := New(context.Background(), config.Config{Sink: "kafka"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sink type")
}

func TestNew_ElasticSinkRequiresURL(t *testing.T) {
	_, err := New(context.Background(), config.Config{Sink: config.SinkElastic})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ES_URL")
}

func TestNew_InfluxSinkRequiresToken(t *testing.T) {
	_, err := New(context.Background(), config.Config{Sink: config.SinkInflux})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INFLUX_TOKEN")
}
