package cli

import (
	"github.com/alexanderramin/solutionizer/internal/config"
	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/alexanderramin/solutionizer/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Import   service.ImportService
	Solution service.SolutionService

	// Settings supplies flag defaults.
	Settings config.Settings

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// PickProjects asks the user to choose projects and returns their IDs.
	// Nil uses the huh multi-select picker.
	PickProjects func(projects []*domain.Project) ([]string, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) pick(projects []*domain.Project) ([]string, error) {
	if a.PickProjects != nil {
		return a.PickProjects(projects)
	}
	return pickProjects(projects)
}

// NewRootCmd creates the top-level "solutionizer" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "solutionizer",
		Short:         "Build solution trees from project references",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newSolutionCmd(app),
	)

	return root
}
