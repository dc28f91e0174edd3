package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aka1453/promin/internal/domain"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 8, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDateRange(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, DateRange(&start, &end), "2026-03-01")
	assert.Contains(t, DateRange(&start, &end), "2026-03-20")
	assert.Contains(t, DateRange(&start, nil), "--")
	assert.Contains(t, DateRange(nil, nil), "--")
}

func TestCostPair(t *testing.T) {
	assert.Contains(t, CostPair(0, 0), "--")
	assert.Contains(t, CostPair(150050, 200000), "1500.50")
	assert.Contains(t, CostPair(150050, 200000), "2000.00")
}

func TestTruncID(t *testing.T) {
	out := TruncID("0123456789abcdef")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "89abcdef")
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, StatusPill(domain.StatusPending), "Pending")
	assert.Contains(t, StatusPill(domain.StatusInProgress), "In Progress")
	assert.Contains(t, StatusPill(domain.StatusCompleted), "Completed")
}
