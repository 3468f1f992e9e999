// Package metrics records per-stage timings of the listing pipeline into a
// bounded in-memory buffer and aggregates them on demand.
package metrics

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Buffer keeps the 1000 most recent metrics; oldest entries are evicted
// first. A strict FIFO cap, not a sampling policy.
const bufferCapacity = 1000

// Per-stage latency thresholds. A breach logs a warning, never an error.
const (
	ThresholdCategoryAnalysis = 3000 * time.Millisecond
	ThresholdFieldGeneration  = 1000 * time.Millisecond
	ThresholdListing          = 10000 * time.Millisecond
	ThresholdValidation       = 1000 * time.Millisecond
)

type Metric struct {
	Event      string            `json:"event"`
	DurationMS int64             `json:"duration_ms"`
	Timestamp  int64             `json:"timestamp"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Stats aggregates metrics for one event type, or globally.
type Stats struct {
	TotalOperations      int     `json:"total_operations"`
	SuccessfulOperations int     `json:"successful_operations"`
	FailedOperations     int     `json:"failed_operations"`
	AverageDuration      float64 `json:"average_duration"`
	MinDuration          int64   `json:"min_duration"`
	MaxDuration          int64   `json:"max_duration"`
	SuccessRate          float64 `json:"success_rate"`
}

// Tracker is an injectable metrics store. Concurrent stage executions share
// the buffer, so every access goes through the mutex.
type Tracker struct {
	mu       sync.Mutex
	buffer   []Metric
	capacity int
}

func NewTracker() *Tracker {
	return &Tracker{
		buffer:   make([]Metric, 0, bufferCapacity),
		capacity: bufferCapacity,
	}
}

// Record appends a metric, evicting the oldest entry once the cap is reached.
func (t *Tracker) Record(event string, duration time.Duration, metadata map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.buffer) >= t.capacity {
		t.buffer = t.buffer[1:]
	}
	t.buffer = append(t.buffer, Metric{
		Event:      event,
		DurationMS: duration.Milliseconds(),
		Timestamp:  time.Now().UnixMilli(),
		Metadata:   metadata,
	})
}

// Len returns the number of buffered metrics.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buffer)
}

// Reset drops all buffered metrics.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buffer = t.buffer[:0]
}

func (t *Tracker) TrackCategoryAnalysis(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.track(ctx, "category_analysis", ThresholdCategoryAnalysis, fn)
}

func (t *Tracker) TrackDynamicFieldGeneration(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.track(ctx, "dynamic_field_generation", ThresholdFieldGeneration, fn)
}

func (t *Tracker) TrackListing(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.track(ctx, "listing", ThresholdListing, fn)
}

func (t *Tracker) TrackValidation(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.track(ctx, "validation", ThresholdValidation, fn)
}

func (t *Tracker) track(ctx context.Context, stage string, threshold time.Duration, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		t.Record(stage+"_failure", elapsed, map[string]string{"error": err.Error()})
	} else {
		t.Record(stage+"_success", elapsed, nil)
	}

	if elapsed > threshold {
		log.Warnf("⚠️ Stage %s took %v, over the %v threshold", stage, elapsed.Round(time.Millisecond), threshold)
	}

	return err
}

// Stats aggregates buffered metrics whose event name starts with eventType;
// an empty eventType aggregates everything. All values are zero when no
// metric matches.
func (t *Tracker) Stats(eventType string) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	var stats Stats
	var totalDuration int64

	for _, m := range t.buffer {
		if eventType != "" && !strings.HasPrefix(m.Event, eventType) {
			continue
		}

		if stats.TotalOperations == 0 || m.DurationMS < stats.MinDuration {
			stats.MinDuration = m.DurationMS
		}
		if m.DurationMS > stats.MaxDuration {
			stats.MaxDuration = m.DurationMS
		}

		stats.TotalOperations++
		totalDuration += m.DurationMS

		if strings.Contains(m.Event, "success") {
			stats.SuccessfulOperations++
		} else if strings.Contains(m.Event, "failure") {
			stats.FailedOperations++
		}
	}

	if stats.TotalOperations > 0 {
		stats.AverageDuration = float64(totalDuration) / float64(stats.TotalOperations)
		stats.SuccessRate = float64(stats.SuccessfulOperations) / float64(stats.TotalOperations) * 100
	}

	return stats
}

// Report renders a human-readable summary of the global and per-stage stats.
func (t *Tracker) Report() string {
	stages := []string{"category_analysis", "dynamic_field_generation", "listing", "validation"}

	var b strings.Builder
	b.WriteString("Performance Report\n")
	b.WriteString("==================\n")

	global := t.Stats("")
	b.WriteString(formatStats("All operations", global))

	for _, stage := range stages {
		stats := t.Stats(stage)
		if stats.TotalOperations == 0 {
			continue
		}
		b.WriteString(formatStats(stage, stats))
	}

	return b.String()
}

func formatStats(name string, s Stats) string {
	return fmt.Sprintf("%s: %d ops (%d ok, %d failed, %.1f%% success), avg %.1fms, min %dms, max %dms\n",
		name, s.TotalOperations, s.SuccessfulOperations, s.FailedOperations,
		s.SuccessRate, s.AverageDuration, s.MinDuration, s.MaxDuration)
}
