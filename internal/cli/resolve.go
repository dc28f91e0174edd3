package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID resolves a project reference: exact name
// (case-insensitive), full UUID, or UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveByPrefix matches an ID against a candidate list: exact match wins,
// then a unique prefix.
func resolveByPrefix(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveMilestoneID resolves a milestone reference, searching every project.
func resolveMilestoneID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, p := range projects {
		milestones, err := app.Milestones.ListByProject(ctx, p.ID)
		if err != nil {
			return "", err
		}
		for _, m := range milestones {
			ids = append(ids, m.ID)
		}
	}
	return resolveByPrefix("milestone", input, ids)
}

// resolveTaskID resolves a task reference, searching every milestone.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, p := range projects {
		milestones, err := app.Milestones.ListByProject(ctx, p.ID)
		if err != nil {
			return "", err
		}
		for _, m := range milestones {
			tasks, err := app.Tasks.ListByMilestone(ctx, m.ID)
			if err != nil {
				return "", err
			}
			for _, t := range tasks {
				ids = append(ids, t.ID)
			}
		}
	}
	return resolveByPrefix("task", input, ids)
}

// resolveDeliverableID resolves a deliverable reference. When taskID is
// given the search is scoped to that task, otherwise every task is searched.
func resolveDeliverableID(ctx context.Context, app *App, taskID, input string) (string, error) {
	var taskIDs []string
	if taskID != "" {
		taskIDs = []string{taskID}
	} else {
		projects, err := app.Projects.List(ctx)
		if err != nil {
			return "", err
		}
		for _, p := range projects {
			milestones, err := app.Milestones.ListByProject(ctx, p.ID)
			if err != nil {
				return "", err
			}
			for _, m := range milestones {
				tasks, err := app.Tasks.ListByMilestone(ctx, m.ID)
				if err != nil {
					return "", err
				}
				for _, t := range tasks {
					taskIDs = append(taskIDs, t.ID)
				}
			}
		}
	}

	var ids []string
	for _, tid := range taskIDs {
		deliverables, err := app.Deliverables.ListByTask(ctx, tid)
		if err != nil {
			return "", err
		}
		for _, d := range deliverables {
			ids = append(ids, d.ID)
		}
	}
	return resolveByPrefix("deliverable", input, ids)
}
