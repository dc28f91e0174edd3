package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aka1453/promin/internal/db"
	"github.com/aka1453/promin/internal/importer"
	"github.com/aka1453/promin/internal/repository"
)

type planImportService struct {
	uow      db.UnitOfWork
	observer CascadeObserver
}

// NewPlanImportService creates a service that imports a whole project plan
// from a JSON file. The import and the initial rollup run in one
// transaction; a failure anywhere leaves the database untouched.
func NewPlanImportService(uow db.UnitOfWork, observers ...CascadeObserver) PlanImportService {
	return &planImportService{
		uow:      uow,
		observer: cascadeObserverOrNoop(observers),
	}
}

func (s *planImportService) ImportPlan(ctx context.Context, filePath string, now time.Time) (*ImportResult, error) {
	schema, err := importer.LoadPlanSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading plan file: %w", err)
	}
	return s.importSchema(ctx, schema, now)
}

func (s *planImportService) importSchema(ctx context.Context, schema *importer.PlanSchema, now time.Time) (*ImportResult, error) {
	if errs := importer.ValidatePlanSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	gen := importer.Convert(schema, now.UTC())

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		milestones := repository.NewSQLiteMilestoneRepo(tx)
		tasks := repository.NewSQLiteTaskRepo(tx)
		deliverables := repository.NewSQLiteDeliverableRepo(tx)

		if err := projects.Create(ctx, gen.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, m := range gen.Milestones {
			if err := milestones.Create(ctx, m); err != nil {
				return fmt.Errorf("creating milestone %q: %w", m.Title, err)
			}
		}
		for _, t := range gen.Tasks {
			if err := tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Title, err)
			}
		}
		for _, d := range gen.Deliverables {
			if err := deliverables.Create(ctx, d); err != nil {
				return fmt.Errorf("creating deliverable %q: %w", d.Title, err)
			}
		}

		// Roll up every imported task once so derived fields are
		// consistent before the transaction commits.
		rollup := NewRollupService(projects, milestones, tasks, deliverables, s.observer)
		for _, t := range gen.Tasks {
			if err := rollup.RecalcTask(ctx, t.ID, now); err != nil {
				return fmt.Errorf("rolling up task %q: %w", t.Title, err)
			}
		}
		if len(gen.Tasks) == 0 {
			if err := rollup.RecalcProject(ctx, gen.Project.ID); err != nil {
				return fmt.Errorf("rolling up project: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:          gen.Project,
		MilestoneCount:   len(gen.Milestones),
		TaskCount:        len(gen.Tasks),
		DeliverableCount: len(gen.Deliverables),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("plan validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
