package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	"github.com/lucawellmeier/octoblog/internal/metrics"
)

// OutputKind classifies a rendered file.
type OutputKind string

const (
	KindHome     OutputKind = "home"
	KindCategory OutputKind = "category"
	KindArticle  OutputKind = "article"
	KindPage     OutputKind = "page"
)

// Output is one rendered file of a run.
type Output struct {
	Path        string     `json:"path"`
	Kind        OutputKind `json:"kind"`
	Fingerprint string     `json:"fingerprint"`
}

// Report captures what a generation run produced.
type Report struct {
	BuildID        string                   `json:"build_id"`
	Start          time.Time                `json:"start"`
	End            time.Time                `json:"end"`
	Duration       time.Duration            `json:"duration_ns"`
	Outcome        metrics.BuildOutcome     `json:"outcome"`
	Error          string                   `json:"error,omitempty"`
	Articles       int                      `json:"articles"`
	Categories     int                      `json:"categories"`
	Pages          int                      `json:"pages"`
	Assets         int                      `json:"assets"`
	StageDurations map[string]time.Duration `json:"stage_durations_ns"`
	Outputs        []Output                 `json:"outputs"`
}

func newReport() *Report {
	return &Report{
		BuildID:        uuid.NewString(),
		Start:          time.Now(),
		Outcome:        metrics.OutcomeFailed,
		StageDurations: make(map[string]time.Duration),
		Outputs:        []Output{},
	}
}

func (r *Report) finish() {
	r.End = time.Now()
	r.Duration = r.End.Sub(r.Start)
}

func (r *Report) setOutcome(o metrics.BuildOutcome) { r.Outcome = o }

func (r *Report) addOutput(kind OutputKind, rel, html string) {
	r.Outputs = append(r.Outputs, Output{
		Path:        filepath.ToSlash(rel),
		Kind:        kind,
		Fingerprint: mdfp.CalculateFingerprintFromParts("", html),
	})
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s articles=%d categories=%d pages=%d assets=%d files=%d duration=%s outcome=%s",
		r.BuildID, r.Articles, r.Categories, r.Pages, r.Assets, len(r.Outputs), r.Duration.Truncate(time.Millisecond), r.Outcome)
}

// WriteJSON writes the report to path atomically.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("ensure report directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	// #nosec G306 -- reports carry no secrets
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report json: %w", err)
	}
	return nil
}
