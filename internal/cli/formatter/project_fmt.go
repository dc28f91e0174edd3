package formatter

import (
	"fmt"
	"strings"

	"github.com/aka1453/promin/internal/domain"
)

// FormatProjectList renders projects as a table with progress and cost.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "STATUS", "PROGRESS", "DUE", "COST"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		due := Dim("--")
		if p.PlannedEnd != nil {
			due = RelativeDateStyled(*p.PlannedEnd)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			StatusPill(p.Status),
			RenderProgress(p.ActualProgress, statusProgressBarWidth),
			due,
			CostPair(p.ActualCost, p.BudgetedCost),
		})
	}

	return RenderTable(headers, rows)
}

// FormatMilestoneList renders milestones as a table.
func FormatMilestoneList(milestones []*domain.Milestone) string {
	headers := []string{"ID", "MILESTONE", "WEIGHT", "STATUS", "PROGRESS", "PLANNED"}
	rows := make([][]string, 0, len(milestones))
	for _, m := range milestones {
		rows = append(rows, []string{
			TruncID(m.ID),
			Bold(m.Title),
			fmt.Sprintf("%.0f", m.Weight),
			StatusPill(m.Status),
			RenderProgress(m.ActualProgress, statusProgressBarWidth),
			DateRange(m.PlannedStart, m.PlannedEnd),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectInspect renders one project's summary block.
func FormatProjectInspect(p *domain.Project, milestones []*domain.Milestone) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(p.Name), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("Status    %s\n", StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("Planned   %s\n", DateRange(p.PlannedStart, p.PlannedEnd)))
	b.WriteString(fmt.Sprintf("Actual    %s\n", DateRange(p.ActualStart, p.ActualEnd)))
	b.WriteString(fmt.Sprintf("Progress  %s  %s\n", RenderProgress(p.ActualProgress, statusProgressBarWidth),
		ScheduleDelta(p.ActualProgress, p.PlannedProgress)))
	b.WriteString(fmt.Sprintf("Cost      %s\n", CostPair(p.ActualCost, p.BudgetedCost)))

	if len(milestones) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatMilestoneList(milestones))
	}

	return RenderBox("Project", b.String())
}
