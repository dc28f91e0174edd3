package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
	}{
		{"0%", 0, 10},
		{"50%", 50, 10},
		{"100%", 100, 10},
		{"over 100 clamps", 150, 10},
		{"negative clamps", -10, 10},
		{"tiny width clamps to 2", 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.Contains(t, got, "[")
			assert.Contains(t, got, "%")
		})
	}
}

func TestRenderProgressBlocks(t *testing.T) {
	assert.NotContains(t, RenderProgress(0, 4), filledBlock)
	assert.NotContains(t, RenderProgress(100, 4), emptyBlock)
	assert.Contains(t, RenderProgress(100, 4), "100%")
}

func TestScheduleDelta(t *testing.T) {
	assert.Contains(t, ScheduleDelta(40, 60), "-20")
	assert.Contains(t, ScheduleDelta(80, 60), "+20")
	assert.Contains(t, ScheduleDelta(60, 60), "on pace")
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"A", "LONG HEADER"},
		[][]string{{"x", "y"}, {"longer cell", "z"}},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header + separator + two rows
	assert.Len(t, lines, 4)
	assert.Contains(t, out, "LONG HEADER")
	assert.Contains(t, out, "longer cell")
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
