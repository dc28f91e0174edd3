package formatter

import (
	"fmt"
	"strings"

	"github.com/aka1453/promin/internal/domain"
	"github.com/aka1453/promin/internal/service"
)

const statusProgressBarWidth = 10

// FormatProjectStatus renders the full hierarchy of one project as a tree
// with a summary header. Critical tasks carry their detection reason as a
// badge.
func FormatProjectStatus(tree *service.ProjectTree) string {
	var b strings.Builder

	p := tree.Project
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(p.Name), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StatusPill(p.Status), DateRange(p.PlannedStart, p.PlannedEnd)))
	b.WriteString(fmt.Sprintf("Progress  %s  %s\n", RenderProgress(p.ActualProgress, statusProgressBarWidth),
		ScheduleDelta(p.ActualProgress, p.PlannedProgress)))
	b.WriteString(fmt.Sprintf("Cost      %s\n", CostPair(p.ActualCost, p.BudgetedCost)))
	b.WriteString("\n")

	items := make([]TreeItem, 0, len(tree.Milestones))
	criticalCount := 0
	for mi, mn := range tree.Milestones {
		items = append(items, TreeItem{
			Title:  fmt.Sprintf("%s  %.0f%%", mn.Milestone.Title, mn.Milestone.ActualProgress),
			Level:  1,
			IsLast: mi == len(tree.Milestones)-1,
			Status: mn.Milestone.Status,
		})
		for ti, tn := range mn.Tasks {
			detail := ""
			if tn.Critical {
				detail = tn.Reason
				criticalCount++
			}
			items = append(items, TreeItem{
				Title:    fmt.Sprintf("%s  %.0f%%", tn.Task.Title, tn.Task.Progress),
				Level:    2,
				IsLast:   ti == len(mn.Tasks)-1,
				Status:   tn.Task.Status,
				Critical: tn.Critical,
				Detail:   detail,
			})
			for di, d := range tn.Deliverables {
				items = append(items, TreeItem{
					Title:  fmt.Sprintf("%s %s", DoneMark(d.IsDone), d.Title),
					Level:  3,
					IsLast: di == len(tn.Deliverables)-1,
				})
			}
		}
	}
	b.WriteString(RenderTree(items))

	if criticalCount > 0 {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d critical task(s)", criticalCount)) + "\n")
	}

	return RenderBox("Status", b.String())
}

// FormatTaskList renders the tasks of one milestone as a table.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "TASK", "STATUS", "PROGRESS", "PLANNED", "GROUP"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		group := t.SequenceGroup
		if group == "" {
			group = "--"
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Title),
			StatusPill(t.Status),
			RenderProgress(t.Progress, statusProgressBarWidth),
			DateRange(t.PlannedStart, t.PlannedEnd),
			Dim(group),
		})
	}
	return RenderTable(headers, rows)
}

// FormatDeliverableList renders the deliverables of one task as a table.
func FormatDeliverableList(deliverables []*domain.Deliverable) string {
	headers := []string{"ID", "DELIVERABLE", "DONE", "WEIGHT", "PLANNED", "COST"}
	rows := make([][]string, 0, len(deliverables))
	for _, d := range deliverables {
		rows = append(rows, []string{
			TruncID(d.ID),
			Bold(d.Title),
			DoneMark(d.IsDone),
			fmt.Sprintf("%.0f", d.Weight),
			DateRange(d.PlannedStart, d.PlannedEnd),
			CostPair(d.ActualCost, d.BudgetedCost),
		})
	}
	return RenderTable(headers, rows)
}
