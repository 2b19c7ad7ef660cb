package cli

import (
	"github.com/spf13/cobra"
	"github.com/vk/brepstep/internal/app"
)

type runner func(cmd *cobra.Command, cfg *app.Config) (*app.App, *app.Config, error)

func newImportCommand(run runner) *cobra.Command {
	var reportPath string
	cmd := &cobra.Command{
		Use:   "import PATH...",
		Short: "Import exchange files and print a summary per file",
		Long: `Import every exchange file given, searching directories recursively
for .step and .stp files. The summary of each file is printed; with --report
a YAML report including timing statistics is written as well.`,
		Args: argsAtLeast(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := run(cmd, &app.Config{InputPaths: args, ReportPath: reportPath})
			if err != nil {
				return err
			}
			return a.Import(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML report to this file.")
	return cmd
}

func newPointsCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "points PATH",
		Short: "List the cartesian points of an exchange file in metres",
		Args:  argsExactly(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := run(cmd, &app.Config{InputPaths: args})
			if err != nil {
				return err
			}
			return a.Points(cmd.Context(), cfg)
		},
	}
}

func newUnsupportedCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "unsupported PATH...",
		Short: "List the entity types that have no constructor",
		Args:  argsAtLeast(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := run(cmd, &app.Config{InputPaths: args})
			if err != nil {
				return err
			}
			return a.Unsupported(cmd.Context(), cfg)
		},
	}
}

func newGraphCommand(run runner) *cobra.Command {
	var reduced bool
	cmd := &cobra.Command{
		Use:   "graph PATH",
		Short: "Dump the pruned reference graph as YAML",
		Args:  argsExactly(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := run(cmd, &app.Config{InputPaths: args})
			if err != nil {
				return err
			}
			return a.Graph(cmd.Context(), cfg, reduced)
		},
	}
	cmd.Flags().BoolVar(&reduced, "reduced", false, "Omit CARTESIAN_POINT and DIRECTION nodes.")
	return cmd
}
