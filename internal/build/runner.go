package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/Happy-Ferret/fledermaus/internal/logfields"
)

// StageFn is one unit of build work operating on the shared state.
type StageFn func(ctx context.Context, st *State) error

// StageDef names a stage for timing and reporting.
type StageDef struct {
	Name string
	Fn   StageFn
}

// RunStages executes stages in order, recording timing and stopping on
// the first error. A canceled context aborts before the next stage
// starts.
func RunStages(ctx context.Context, st *State, stages []StageDef) error {
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		t0 := time.Now()
		err := stage.Fn(ctx, st)
		dur := time.Since(t0)

		st.Report.StageDurations[stage.Name] = dur
		st.Recorder.StageDuration(stage.Name, dur)
		slog.Debug("Stage finished",
			logfields.Stage(stage.Name),
			logfields.DurationMS(float64(dur.Milliseconds())),
			logfields.Error(err))

		if err != nil {
			return err
		}
	}
	return nil
}
