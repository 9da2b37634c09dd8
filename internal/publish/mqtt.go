package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/models"
)

// MQTTPublisher streams each snapshot of a batch to a per-vehicle topic at
// QoS 1. A batch succeeds only if every record was acknowledged.
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
}

// NewMQTT connects to the broker.
func NewMQTT(cfg config.Config) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBrokerURL).
		SetClientID(cfg.MQTTClientID).
		SetConnectTimeout(10 * time.Second)
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect failed: %w", token.Error())
	}

	return &MQTTPublisher{client: client, prefix: cfg.BatchName}, nil
}

// Name returns the sink name.
func (p *MQTTPublisher) Name() string { return config.SinkMQTT }

// Publish sends the records in batch order, waiting for each ack.
func (p *MQTTPublisher) Publish(ctx context.Context, batch []models.Snapshot) error {
	for _, snap := range batch {
		payload, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}

		token := p.client.Publish(topicFor(p.prefix, snap.AGVID), 1, false, payload)
		select {
		case <-token.Done():
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt publish failed: %w", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight messages a short
// drain window.
func (p *MQTTPublisher) Close(ctx context.Context) error {
	p.client.Disconnect(250)
	return nil
}

// topicFor returns the per-vehicle topic, e.g. agv_telemetry/AGV-01.
func topicFor(prefix, agvID string) string {
	return prefix + "/" + agvID
}
