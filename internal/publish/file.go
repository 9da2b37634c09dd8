package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/ukydev/yard-telemetry/internal/config"
	"github.com/ukydev/yard-telemetry/internal/models"
)

// FilePublisher appends batches to a local NDJSON file, one line per
// record. A path ending in .gz gets gzip framing. Useful for dry runs and
// for replaying a capture into a store later.
type FilePublisher struct {
	file *os.File
	gz   *gzip.Writer // nil for plain files
}

// NewFile opens (or creates) the output file in append mode.
func NewFile(cfg config.Config) (*FilePublisher, error) {
	file, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.FilePath, err)
	}

	p := &FilePublisher{file: file}
	if strings.HasSuffix(cfg.FilePath, ".gz") {
		p.gz = gzip.NewWriter(file)
	}
	return p, nil
}

// Name returns the sink name.
func (p *FilePublisher) Name() string { return config.SinkFile }

// Publish appends the batch and flushes, so an interrupted run loses at
// most the batch being written.
func (p *FilePublisher) Publish(ctx context.Context, batch []models.Snapshot) error {
	for _, snap := range batch {
		line, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		line = append(line, '\n')
		if _, err := p.write(line); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	if p.gz != nil {
		if err := p.gz.Flush(); err != nil {
			return fmt.Errorf("failed to flush: %w", err)
		}
	}
	return nil
}

func (p *FilePublisher) write(line []byte) (int, error) {
	if p.gz != nil {
		return p.gz.Write(line)
	}
	return p.file.Write(line)
}

// Close finalizes the gzip stream, if any, and closes the file.
func (p *FilePublisher) Close(ctx context.Context) error {
	if p.gz != nil {
		if err := p.gz.Close(); err != nil {
			return err
		}
	}
	return p.file.Close()
}
