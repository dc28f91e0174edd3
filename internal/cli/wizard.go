package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/aka1453/promin/internal/cli/formatter"
	"github.com/aka1453/promin/internal/domain"
)

// prominHuhTheme returns a custom huh theme using the Gruvbox palette.
func prominHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateOptionalWeight(s string) error {
	if s == "" {
		return nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// runTaskAddForm collects a new task interactively: milestone selection from
// a list, then title, weight and sequence group.
func runTaskAddForm(ctx context.Context, app *App) error {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return err
	}

	var options []huh.Option[string]
	for _, p := range projects {
		milestones, err := app.Milestones.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		for _, m := range milestones {
			label := fmt.Sprintf("%s / %s", p.Name, m.Title)
			options = append(options, huh.NewOption(label, m.ID))
		}
	}
	if len(options) == 0 {
		return fmt.Errorf("no milestones exist yet; create one first")
	}

	var milestoneID, title, weightStr, group string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Milestone").
				Options(options...).
				Value(&milestoneID),
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Weight (blank for 0)").
				Placeholder("50").
				Value(&weightStr).
				Validate(validateOptionalWeight),
			huh.NewInput().
				Title("Sequence group (optional)").
				Placeholder("build").
				Value(&group),
		),
	).WithTheme(prominHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	weight := 0.0
	if weightStr != "" {
		weight, _ = strconv.ParseFloat(weightStr, 64)
	}

	t := &domain.Task{
		ID:            uuid.New().String(),
		MilestoneID:   milestoneID,
		Title:         title,
		Weight:        weight,
		SequenceGroup: group,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := app.Tasks.Create(ctx, t); err != nil {
		return err
	}

	fmt.Printf("Created task %s (weight %.0f)\n", t.Title, t.Weight)
	return nil
}
