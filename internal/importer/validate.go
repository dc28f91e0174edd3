package importer

import (
	"fmt"
	"time"
)

// ValidatePlanSchema checks the plan schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidatePlanSchema(schema *PlanSchema) []error {
	var errs []error

	if schema.Project.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}

	milestoneRefs := make(map[string]bool)
	errs = append(errs, validateMilestones(schema.Milestones, milestoneRefs)...)

	taskRefs := make(map[string]bool)
	errs = append(errs, validateTasks(schema.Tasks, milestoneRefs, taskRefs)...)

	errs = append(errs, validateDeliverables(schema.Deliverables, taskRefs)...)

	return errs
}

func validateMilestones(milestones []MilestonePlan, refs map[string]bool) []error {
	var errs []error

	for i, m := range milestones {
		prefix := fmt.Sprintf("milestones[%d]", i)
		if m.Ref == "" {
			errs = append(errs, fmt.Errorf("%s: ref is required", prefix))
		} else if refs[m.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", prefix, m.Ref))
		} else {
			refs[m.Ref] = true
		}
		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", prefix))
		}
		if m.Weight != nil && *m.Weight < 0 {
			errs = append(errs, fmt.Errorf("%s: weight must not be negative", prefix))
		}
	}

	return errs
}

func validateTasks(tasks []TaskPlan, milestoneRefs, refs map[string]bool) []error {
	var errs []error

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s: ref is required", prefix))
		} else if refs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", prefix, t.Ref))
		} else {
			refs[t.Ref] = true
		}
		if t.MilestoneRef == "" {
			errs = append(errs, fmt.Errorf("%s: milestone_ref is required", prefix))
		} else if !milestoneRefs[t.MilestoneRef] {
			errs = append(errs, fmt.Errorf("%s: milestone_ref %q does not match any milestone", prefix, t.MilestoneRef))
		}
		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", prefix))
		}
		if t.Weight != nil && *t.Weight < 0 {
			errs = append(errs, fmt.Errorf("%s: weight must not be negative", prefix))
		}
	}

	return errs
}

func validateDeliverables(deliverables []DeliverablePlan, taskRefs map[string]bool) []error {
	var errs []error

	refs := make(map[string]bool)
	for i, d := range deliverables {
		prefix := fmt.Sprintf("deliverables[%d]", i)
		if d.Ref == "" {
			errs = append(errs, fmt.Errorf("%s: ref is required", prefix))
		} else if refs[d.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", prefix, d.Ref))
		} else {
			refs[d.Ref] = true
		}
		if d.TaskRef == "" {
			errs = append(errs, fmt.Errorf("%s: task_ref is required", prefix))
		} else if !taskRefs[d.TaskRef] {
			errs = append(errs, fmt.Errorf("%s: task_ref %q does not match any task", prefix, d.TaskRef))
		}
		if d.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", prefix))
		}
		if d.Weight != nil && *d.Weight < 0 {
			errs = append(errs, fmt.Errorf("%s: weight must not be negative", prefix))
		}
		if d.BudgetedCost != nil && *d.BudgetedCost < 0 {
			errs = append(errs, fmt.Errorf("%s: budgeted_cost must not be negative", prefix))
		}
		if d.ActualCost != nil && *d.ActualCost < 0 {
			errs = append(errs, fmt.Errorf("%s: actual_cost must not be negative", prefix))
		}

		start := validateOptionalDate(prefix+".planned_start", d.PlannedStart, &errs)
		end := validateOptionalDate(prefix+".planned_end", d.PlannedEnd, &errs)
		if start != nil && end != nil && end.Before(*start) {
			errs = append(errs, fmt.Errorf("%s: planned_end %q is before planned_start %q", prefix, *d.PlannedEnd, *d.PlannedStart))
		}
	}

	return errs
}

func validateOptionalDate(field string, value *string, errs *[]error) *time.Time {
	if value == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *value))
		return nil
	}
	return &t
}
