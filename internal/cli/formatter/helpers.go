package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aka1453/promin/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDateStyled returns RelativeDate with urgency coloring applied.
func RelativeDateStyled(t time.Time) string {
	text := RelativeDate(t)
	days := int(math.Round(time.Until(t).Hours() / 24))

	if days >= 0 && days <= 2 {
		return StyleRed.Render(text)
	}
	if days > 2 && days <= 7 {
		return StyleYellow.Render(text)
	}
	if days < 0 {
		return StyleRed.Render(text)
	}
	return StyleFg.Render(text)
}

// StatusPill returns a colored lifecycle status indicator.
func StatusPill(status domain.Status) string {
	switch status {
	case domain.StatusPending:
		return StyleBlue.Render("○ Pending")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// DoneMark returns a check mark for done deliverables and a circle otherwise.
func DoneMark(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("○")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// DateRange renders a planned or actual date range, dimming missing ends.
func DateRange(start, end *time.Time) string {
	from := "--"
	if start != nil {
		from = start.Format(domain.DateLayout)
	}
	to := "--"
	if end != nil {
		to = end.Format(domain.DateLayout)
	}
	if start == nil && end == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%s %s %s", StyleFg.Render(from), Dim("→"), StyleFg.Render(to))
}

// Money renders a cent amount as dollars.
func Money(c domain.Cents) string {
	if c == 0 {
		return Dim("--")
	}
	return StyleFg.Render("$" + c.String())
}

// CostPair renders actual against budgeted cost, red when over budget.
func CostPair(actual, budgeted domain.Cents) string {
	if budgeted == 0 && actual == 0 {
		return Dim("--")
	}
	actualStr := "$" + actual.String()
	if actual > budgeted && budgeted > 0 {
		actualStr = StyleRed.Render(actualStr)
	} else {
		actualStr = StyleFg.Render(actualStr)
	}
	return fmt.Sprintf("%s %s", actualStr, Dim("/ $"+budgeted.String()))
}
