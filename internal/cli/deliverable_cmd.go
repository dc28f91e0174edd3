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

func newDeliverableCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deliverable",
		Aliases: []string{"del"},
		Short:   "Manage deliverables",
	}

	cmd.AddCommand(
		newDeliverableAddCmd(app),
		newDeliverableListCmd(app),
		newDeliverableUpdateCmd(app),
		newDeliverableCheckCmd(app),
		newDeliverableUncheckCmd(app),
		newDeliverableRemoveCmd(app),
	)

	return cmd
}

func newDeliverableAddCmd(app *App) *cobra.Command {
	var task, title, start, end string
	var weight, budgeted, actual float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a deliverable in a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, task)
			if err != nil {
				return err
			}

			d := &domain.Deliverable{
				ID:           uuid.New().String(),
				TaskID:       taskID,
				Title:        title,
				Weight:       weight,
				BudgetedCost: domain.CentsFromFloat(budgeted),
				ActualCost:   domain.CentsFromFloat(actual),
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}
			if start != "" {
				if d.PlannedStart = domain.ParseLocalDate(start); d.PlannedStart == nil {
					return fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", start)
				}
			}
			if end != "" {
				if d.PlannedEnd = domain.ParseLocalDate(end); d.PlannedEnd == nil {
					return fmt.Errorf("invalid end date %q (expected YYYY-MM-DD)", end)
				}
			}

			if err := app.Deliverables.Create(ctx, d); err != nil {
				return err
			}

			fmt.Printf("Created deliverable %s (weight %.0f)\n", d.Title, d.Weight)
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Parent task (ID or ID prefix)")
	cmd.Flags().StringVar(&title, "title", "", "Deliverable title")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Relative weight within the task")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&budgeted, "budget", 0, "Budgeted cost")
	cmd.Flags().Float64Var(&actual, "cost", 0, "Actual cost")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newDeliverableListCmd(app *App) *cobra.Command {
	var task string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the deliverables of a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, task)
			if err != nil {
				return err
			}

			deliverables, err := app.Deliverables.ListByTask(ctx, taskID)
			if err != nil {
				return err
			}
			if len(deliverables) == 0 {
				fmt.Println("No deliverables found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatDeliverableList(deliverables))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Parent task (ID or ID prefix)")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}

func newDeliverableUpdateCmd(app *App) *cobra.Command {
	var title, start, end string
	var weight, budgeted, actual float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a deliverable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDeliverableID(ctx, app, "", args[0])
			if err != nil {
				return err
			}
			d, err := app.Deliverables.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				d.Title = title
			}
			if cmd.Flags().Changed("weight") {
				d.Weight = weight
			}
			if cmd.Flags().Changed("start") {
				if d.PlannedStart = domain.ParseLocalDate(start); d.PlannedStart == nil {
					return fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", start)
				}
			}
			if cmd.Flags().Changed("end") {
				if d.PlannedEnd = domain.ParseLocalDate(end); d.PlannedEnd == nil {
					return fmt.Errorf("invalid end date %q (expected YYYY-MM-DD)", end)
				}
			}
			if cmd.Flags().Changed("budget") {
				d.BudgetedCost = domain.CentsFromFloat(budgeted)
			}
			if cmd.Flags().Changed("cost") {
				d.ActualCost = domain.CentsFromFloat(actual)
			}

			if err := app.Deliverables.Update(ctx, d); err != nil {
				return err
			}

			fmt.Printf("Updated deliverable %s\n", d.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Deliverable title")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Relative weight within the task")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&budgeted, "budget", 0, "Budgeted cost")
	cmd.Flags().Float64Var(&actual, "cost", 0, "Actual cost")

	return cmd
}

func newDeliverableCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check ID",
		Short: "Mark a deliverable done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDeliverableID(ctx, app, "", args[0])
			if err != nil {
				return err
			}

			if err := app.Deliverables.Check(ctx, id, time.Now()); err != nil {
				return err
			}

			fmt.Println("Deliverable checked off.")
			return nil
		},
	}
}

func newDeliverableUncheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uncheck ID",
		Short: "Revert a done deliverable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDeliverableID(ctx, app, "", args[0])
			if err != nil {
				return err
			}

			if err := app.Deliverables.Uncheck(ctx, id, time.Now()); err != nil {
				return err
			}

			fmt.Println("Deliverable unchecked; ancestors reopened where needed.")
			return nil
		},
	}
}

func newDeliverableRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a deliverable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDeliverableID(ctx, app, "", args[0])
			if err != nil {
				return err
			}

			if err := app.Deliverables.Delete(ctx, id, time.Now()); err != nil {
				return err
			}

			fmt.Println("Deliverable removed.")
			return nil
		},
	}
}
