package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aka1453/promin/internal/cli/formatter"
	"github.com/aka1453/promin/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskStartCmd(app),
		newTaskCompleteCmd(app),
		newTaskReopenCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

// parseDayFlag parses an optional --on date, defaulting to today.
func parseDayFlag(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	day, err := time.ParseInLocation(domain.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return day, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var milestone, title, group string
	var weight float64
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task in a milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if interactive {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				return runTaskAddForm(ctx, app)
			}

			milestoneID, err := resolveMilestoneID(ctx, app, milestone)
			if err != nil {
				return err
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
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "Parent milestone (ID or ID prefix)")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Relative weight within the milestone")
	cmd.Flags().StringVar(&group, "group", "", "Sequence group for board lanes")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the fields in an interactive form")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var milestone string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestoneID, err := resolveMilestoneID(ctx, app, milestone)
			if err != nil {
				return err
			}

			tasks, err := app.Tasks.ListByMilestone(ctx, milestoneID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "Parent milestone (ID or ID prefix)")
	_ = cmd.MarkFlagRequired("milestone")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, group string
	var weight float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				t.Title = title
			}
			if cmd.Flags().Changed("weight") {
				t.Weight = weight
			}
			if cmd.Flags().Changed("group") {
				t.SequenceGroup = group
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Updated task %s\n", t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Relative weight within the milestone")
	cmd.Flags().StringVar(&group, "group", "", "Sequence group for board lanes")

	return cmd
}

func newTaskStartCmd(app *App) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "start ID",
		Short: "Mark a task started",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parseDayFlag(on)
			if err != nil {
				return err
			}

			if err := app.Tasks.Start(ctx, taskID, day); err != nil {
				return err
			}

			fmt.Printf("Task started on %s\n", day.Format(domain.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Start date (YYYY-MM-DD, default today)")

	return cmd
}

func newTaskCompleteCmd(app *App) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parseDayFlag(on)
			if err != nil {
				return err
			}

			if err := app.Tasks.Complete(ctx, taskID, day); err != nil {
				return err
			}

			fmt.Printf("Task completed on %s\n", day.Format(domain.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Completion date (YYYY-MM-DD, default today)")

	return cmd
}

func newTaskReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen ID",
		Short: "Reopen a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if err := app.Tasks.Reopen(ctx, taskID, time.Now()); err != nil {
				return err
			}

			fmt.Println("Task reopened.")
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a task and its deliverables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !force {
				return fmt.Errorf("removing a task deletes its deliverables; pass --force to confirm")
			}

			if err := app.Tasks.Delete(ctx, taskID, time.Now()); err != nil {
				return err
			}

			fmt.Println("Task removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation guard")

	return cmd
}
