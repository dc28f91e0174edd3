package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aka1453/promin/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status PROJECT",
		Short: "Show the full hierarchy of a project with rollup figures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			tree, err := app.Status.ProjectTree(ctx, projectID, time.Now())
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatProjectStatus(tree))
			return nil
		},
	}
}

func newCriticalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "critical PROJECT",
		Short: "List the critical tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			tree, err := app.Status.ProjectTree(ctx, projectID, time.Now())
			if err != nil {
				return err
			}

			count := 0
			for _, mn := range tree.Milestones {
				for _, tn := range mn.Tasks {
					if !tn.Critical {
						continue
					}
					count++
					fmt.Printf("%s %s %s\n  %s\n",
						formatter.CriticalIndicator(true),
						formatter.Bold(tn.Task.Title),
						formatter.Dim("("+mn.Milestone.Title+")"),
						formatter.Dim(tn.Reason))
				}
			}
			if count == 0 {
				fmt.Println("No critical tasks.")
			}
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a whole project plan from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportPlan(context.Background(), args[0], time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("Imported project %s: %d milestones, %d tasks, %d deliverables\n",
				result.Project.Name,
				result.MilestoneCount,
				result.TaskCount,
				result.DeliverableCount)
			return nil
		},
	}
}
