// Package recorder captures landmark frames to zstd-compressed JSONL files
// and replays them through a classifier. Recordings hold raw tracker output
// for offline threshold tuning; gate outcomes are never written.
package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/ayusman/gesturegate/internal/classify"
	"github.com/ayusman/gesturegate/internal/landmark"
)

// FileSuffix is the extension recordings are written with.
const FileSuffix = ".jsonl.zst"

// Record is one captured frame.
type Record struct {
	TimestampMs int64              `json:"timestamp_ms"`
	Points      []landmark.Point3D `json:"points"`
}

// Recorder writes landmark frames to a single .jsonl.zst file.
type Recorder struct {
	file    *os.File
	encoder *zstd.Encoder
	writer  *bufio.Writer
	path    string
}

// New creates a recording file at dir/{name}.jsonl.zst.
func New(dir, name string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recording dir: %w", err)
	}

	path := filepath.Join(dir, name+FileSuffix)
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}

	encoder, err := zstd.NewWriter(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	return &Recorder{
		file:    file,
		encoder: encoder,
		writer:  bufio.NewWriter(encoder),
		path:    path,
	}, nil
}

// Path returns the recording file path.
func (r *Recorder) Path() string {
	return r.path
}

// Write appends one frame to the recording.
func (r *Recorder) Write(points []landmark.Point3D) error {
	rec := Record{
		TimestampMs: time.Now().UnixMilli(),
		Points:      points,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	if _, err := r.writer.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := r.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}

// Close flushes and finalizes the recording.
func (r *Recorder) Close() error {
	if err := r.writer.Flush(); err != nil {
		r.encoder.Close()
		r.file.Close()
		return fmt.Errorf("flush recording: %w", err)
	}
	if err := r.encoder.Close(); err != nil {
		r.file.Close()
		return fmt.Errorf("finalize compression: %w", err)
	}
	return r.file.Close()
}

// ReplayStats summarizes a recording replayed through a classifier.
type ReplayStats struct {
	Frames int            `json:"frames"`
	Labels map[string]int `json:"labels"`
}

// Replay reads a recording and classifies every frame with the given
// classifier, returning per-label counts. Undecodable lines count as frames
// labeled "none", matching the live pipeline's treatment of bad input.
func Replay(path string, c *classify.Classifier) (*ReplayStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	stats := &ReplayStats{Labels: make(map[string]int)}

	scanner := bufio.NewScanner(decoder)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec Record
		label := classify.GestureNone
		if err := json.Unmarshal(line, &rec); err == nil {
			label = c.Classify(rec.Points)
		}

		stats.Frames++
		stats.Labels[label.String()]++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}

	return stats, nil
}
