package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45% from a 0-100
// percentage. The bar is colored by value: green above 66, yellow 33-66,
// red below 33.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %s", style.Render(bar), fmt.Sprintf("%3.0f%%", pct))
}

// ScheduleDelta renders actual progress against planned progress: green when
// ahead or on pace, red when behind by more than a point.
func ScheduleDelta(actual, planned float64) string {
	delta := actual - planned
	text := fmt.Sprintf("%+.0f vs plan", delta)
	switch {
	case delta < -1:
		return StyleRed.Render(text)
	case delta > 1:
		return StyleGreen.Render(text)
	default:
		return Dim("on pace")
	}
}
