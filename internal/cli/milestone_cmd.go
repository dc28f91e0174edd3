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

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage milestones",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneListCmd(app),
		newMilestoneUpdateCmd(app),
		newMilestoneRemoveCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var project, title string
	var weight float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a milestone in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			m := &domain.Milestone{
				ID:        uuid.New().String(),
				ProjectID: projectID,
				Title:     title,
				Weight:    weight,
				Status:    domain.StatusPending,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}

			if err := app.Milestones.Create(ctx, m); err != nil {
				return err
			}

			fmt.Printf("Created milestone %s (weight %.0f)\n", m.Title, m.Weight)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Parent project (name, ID or ID prefix)")
	cmd.Flags().StringVar(&title, "title", "", "Milestone title")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Relative weight within the project")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newMilestoneListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the milestones of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			milestones, err := app.Milestones.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(milestones) == 0 {
				fmt.Println("No milestones found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatMilestoneList(milestones))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Parent project (name, ID or ID prefix)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newMilestoneUpdateCmd(app *App) *cobra.Command {
	var title string
	var weight float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestoneID, err := resolveMilestoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Milestones.GetByID(ctx, milestoneID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				m.Title = title
			}
			if cmd.Flags().Changed("weight") {
				m.Weight = weight
			}

			if err := app.Milestones.Update(ctx, m); err != nil {
				return err
			}

			fmt.Printf("Updated milestone %s\n", m.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Milestone title")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Relative weight within the project")

	return cmd
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a milestone and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestoneID, err := resolveMilestoneID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !force {
				return fmt.Errorf("removing a milestone deletes its tasks and deliverables; pass --force to confirm")
			}

			if err := app.Milestones.Delete(ctx, milestoneID); err != nil {
				return err
			}

			fmt.Println("Milestone removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation guard")

	return cmd
}
