package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/solutionizer/internal/cli/formatter"
	"github.com/alexanderramin/solutionizer/internal/solution"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newSolutionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solution",
		Short: "Build solution trees",
	}

	cmd.AddCommand(newSolutionBuildCmd(app))

	return cmd
}

func newSolutionBuildCmd(app *App) *cobra.Command {
	var (
		root    string
		follow  bool
		depth   int
		removes []string
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "build [REF...]",
		Short: "Add projects to a new solution and print the tree",
		Long: `Each REF is a project ID, name, or ID prefix. Referenced projects are
placed under _References in folders that mirror their location below --root.
Without REF arguments on a terminal, projects are picked interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			refs := args
			if len(refs) == 0 {
				if !app.interactive() {
					return fmt.Errorf("no projects given (pass at least one REF)")
				}
				projects, err := app.Projects.List(ctx)
				if err != nil {
					return err
				}
				if len(projects) == 0 {
					return fmt.Errorf("no projects in the repository; run 'solutionizer project import' first")
				}
				if refs, err = app.pick(projects); err != nil {
					return err
				}
			}

			if depth < 0 {
				return fmt.Errorf("--depth must be >= 0, got %d", depth)
			}
			absRoot, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolving root: %w", err)
			}

			settings := solution.Settings{FollowReferences: follow, ReferenceDepth: depth}
			if err := app.Solution.Open(ctx, absRoot, settings); err != nil {
				return err
			}
			for _, ref := range refs {
				if _, err := app.Solution.Add(ctx, ref); err != nil {
					return fmt.Errorf("adding %q: %w", ref, err)
				}
			}
			for _, path := range removes {
				if err := app.Solution.Remove(ctx, path); err != nil {
					return err
				}
			}

			snap, err := app.Solution.Snapshot(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if plain {
				return formatter.RenderPlainTree(out, snap)
			}
			fmt.Fprintln(out, formatter.FormatSolution(snap))
			return nil
		},
	}

	session := pflag.NewFlagSet("session", pflag.ContinueOnError)
	session.StringVar(&root, "root", app.Settings.RootPath, "Root path that _References folders mirror")
	session.BoolVar(&follow, "follow-references", app.Settings.FollowReferences, "Add referenced projects transitively")
	session.IntVar(&depth, "depth", app.Settings.ReferenceDepth, "Reference levels to follow beyond the direct references")
	cmd.Flags().AddFlagSet(session)
	cmd.Flags().StringArrayVar(&removes, "remove", nil, "Remove the item at a display path after adding (repeatable)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print an unstyled tree")

	return cmd
}
