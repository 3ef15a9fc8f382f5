package build

import (
	"time"

	"github.com/google/uuid"
)

// Report summarizes one build run.
type Report struct {
	BuildID string

	Start time.Time
	End   time.Time

	StageDurations map[string]time.Duration

	DocumentsParsed int
	ListingsCreated int
	PagesGenerated  int
	PagesWritten    int
	Languages       []string
}

// NewReport creates a report with a fresh build ID.
func NewReport() *Report {
	return &Report{
		BuildID:        uuid.NewString(),
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
	}
}

// Duration returns the wall-clock build duration.
func (r *Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
