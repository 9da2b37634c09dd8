package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ukydev/yard-telemetry/internal/auth"
	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/models"
)

// ElasticPublisher ships each batch as one NDJSON request to the index's
// bulk endpoint. This is the default sink.
type ElasticPublisher struct {
	bulkURL string
	auth    *auth.Service
	client  *http.Client
}

// NewElastic builds the publisher from the ES settings in cfg.
func NewElastic(cfg config.Config) (*ElasticPublisher, error) {
	if cfg.ESURL == "" {
		return nil, errors.New("ES_URL must be set for the elastic sink")
	}
	authSvc, err := auth.NewService(cfg)
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(cfg.ESURL, "/")
	return &ElasticPublisher{
		bulkURL: fmt.Sprintf("%s/%s/_bulk", base, cfg.BatchName),
		auth:    authSvc,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Name returns the sink name.
func (p *ElasticPublisher) Name() string { return config.SinkElastic }

// Publish POSTs the batch as alternating action and document lines. A
// non-2xx response is a transport failure; item-level results inside a
// successful response are not inspected.
func (p *ElasticPublisher) Publish(ctx context.Context, batch []models.Snapshot) error {
	if len(batch) == 0 {
		return nil
	}

	var body bytes.Buffer
	for _, snap := range batch {
		body.WriteString("{\"index\":{}}\n")
		doc, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		body.Write(doc)
		body.WriteByte('\n')
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.bulkURL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-ndjson")
	key, value, err := p.auth.Header()
	if err != nil {
		return err
	}
	if key != "" {
		req.Header.Set(key, value)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("bulk request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bulk request returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases idle connections.
func (p *ElasticPublisher) Close(ctx context.Context) error {
	p.client.CloseIdleConnections()
	return nil
}
