package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlanSchema is the top-level JSON structure for a plan import file.
// Refs are file-local identifiers used to link children to parents; they
// are replaced with generated IDs during conversion.
type PlanSchema struct {
	Project      ProjectPlan       `json:"project"`
	Milestones   []MilestonePlan   `json:"milestones"`
	Tasks        []TaskPlan        `json:"tasks"`
	Deliverables []DeliverablePlan `json:"deliverables"`
}

// ProjectPlan defines the project-level fields in the plan file.
type ProjectPlan struct {
	Name string `json:"name"`
}

// MilestonePlan defines a milestone in the plan file.
type MilestonePlan struct {
	Ref    string   `json:"ref"`
	Title  string   `json:"title"`
	Weight *float64 `json:"weight,omitempty"`
}

// TaskPlan defines a task in the plan file.
type TaskPlan struct {
	Ref           string   `json:"ref"`
	MilestoneRef  string   `json:"milestone_ref"`
	Title         string   `json:"title"`
	Weight        *float64 `json:"weight,omitempty"`
	SequenceGroup string   `json:"sequence_group,omitempty"`
}

// DeliverablePlan defines a deliverable in the plan file. Costs are given
// in currency units and converted to cents.
type DeliverablePlan struct {
	Ref          string   `json:"ref"`
	TaskRef      string   `json:"task_ref"`
	Title        string   `json:"title"`
	Weight       *float64 `json:"weight,omitempty"`
	PlannedStart *string  `json:"planned_start,omitempty"`
	PlannedEnd   *string  `json:"planned_end,omitempty"`
	BudgetedCost *float64 `json:"budgeted_cost,omitempty"`
	ActualCost   *float64 `json:"actual_cost,omitempty"`
	Done         bool     `json:"done,omitempty"`
}

// LoadPlanSchema reads and parses a plan JSON file.
func LoadPlanSchema(path string) (*PlanSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema PlanSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &schema, nil
}
