package service

import (
	"context"
	"io"
	"log/slog"
)

// CascadeStage identifies one level of the rollup cascade.
type CascadeStage string

const (
	StageTask      CascadeStage = "task"
	StageMilestone CascadeStage = "milestone"
	StageProject   CascadeStage = "project"
)

// CascadeObserver receives rollup cascade events. The engine itself stays
// print-free; observers decide what to do with the telemetry.
type CascadeObserver interface {
	// StageRecalced fires after a stage's update has been committed.
	StageRecalced(ctx context.Context, stage CascadeStage, id string)
	// StageSkipped fires when a stage's target vanished mid-cascade.
	StageSkipped(ctx context.Context, stage CascadeStage, id string)
}

// NoopCascadeObserver ignores all events.
type NoopCascadeObserver struct{}

func (NoopCascadeObserver) StageRecalced(context.Context, CascadeStage, string) {}
func (NoopCascadeObserver) StageSkipped(context.Context, CascadeStage, string)  {}

type logCascadeObserver struct {
	logger *slog.Logger
}

// NewLogCascadeObserver writes cascade events to the provided writer.
func NewLogCascadeObserver(w io.Writer) CascadeObserver {
	if w == nil {
		return NoopCascadeObserver{}
	}
	return &logCascadeObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logCascadeObserver) StageRecalced(ctx context.Context, stage CascadeStage, id string) {
	o.logger.InfoContext(ctx, "rollup_stage", "stage", string(stage), "id", id)
}

func (o *logCascadeObserver) StageSkipped(ctx context.Context, stage CascadeStage, id string) {
	o.logger.WarnContext(ctx, "rollup_stage_skipped", "stage", string(stage), "id", id)
}

func cascadeObserverOrNoop(observers []CascadeObserver) CascadeObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopCascadeObserver{}
}
