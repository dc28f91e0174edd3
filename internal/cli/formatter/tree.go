package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aka1453/promin/internal/domain"
)

// TreeItem represents a single row in the hierarchy display.
type TreeItem struct {
	Title    string
	Level    int
	IsLast   bool
	Status   domain.Status
	Critical bool
	Detail   string // right-aligned badge, "" for none
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

var styleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Completed items get a green ✔ prefix, in-progress items an
// amber ▶, critical items a red ▲; detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		statusPrefix := ""
		switch {
		case item.Critical:
			statusPrefix = StyleRed.Render("▲ ")
			title = StyleRed.Render(title)
		case item.Status == domain.StatusCompleted:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case item.Status == domain.StatusInProgress:
			statusPrefix = styleYellowBold.Render("▶ ")
			title = styleYellowBold.Render(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
