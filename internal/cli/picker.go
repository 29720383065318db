package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/solutionizer/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// pickerKeyMap adds esc as a way to cancel the picker.
func pickerKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	return km
}

// pickProjects shows a multi-select of all projects. The form draws on
// stderr so the tree printed afterwards can be piped.
func pickProjects(projects []*domain.Project) ([]string, error) {
	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  (%s)", p.Name, p.DisplayID()), p.ID))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Projects to add").
				Description("References are added automatically").
				Options(options...).
				Validate(func(ids []string) error {
					if len(ids) == 0 {
						return fmt.Errorf("select at least one project")
					}
					return nil
				}).
				Value(&selected),
		),
	).
		WithKeyMap(pickerKeyMap()).
		WithProgramOptions(tea.WithOutput(os.Stderr))

	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}
