package cli

import (
	"github.com/spf13/cobra"

	"github.com/aka1453/promin/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects     service.ProjectService
	Milestones   service.MilestoneService
	Tasks        service.TaskService
	Deliverables service.DeliverableService
	Status       service.StatusService
	Import       service.PlanImportService

	// IsInteractive reports whether stdin is attached to a terminal;
	// interactive forms and the board require it.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "promin" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "promin",
		Short: "Hierarchical project tracker with cascading progress rollups",
	}

	root.AddCommand(
		newProjectCmd(app),
		newMilestoneCmd(app),
		newTaskCmd(app),
		newDeliverableCmd(app),
		newStatusCmd(app),
		newCriticalCmd(app),
		newBoardCmd(app),
		newImportCmd(app),
	)

	return root
}
