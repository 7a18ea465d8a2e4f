package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodeboxhq/nodebox/internal/output"
)

var projectRemoveFiles bool

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage workspace projects",
	Long:  "List, show, and remove projects in the nodebox workspace.",
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workspace projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectListRun()
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show detailed project information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectShowRun(args[0])
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:     "remove <name-or-path>",
	Aliases: []string{"rm"},
	Short:   "Remove a project from the workspace",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectRemoveRun(args[0])
	},
}

func init() {
	projectRemoveCmd.Flags().BoolVar(&projectRemoveFiles, "files", false, "Also delete the project directory")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectRemoveCmd)
	rootCmd.AddCommand(projectCmd)
}

func projectListRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	projects, err := s.ListProjects(ctx)
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		ui.Info("No projects yet. Use 'nodebox new <name>' or 'nodebox import <url>' to get started.")
		return nil
	}

	table := ui.Table([]string{"Name", "Type", "Port", "Repo", "Path"})
	for _, p := range projects {
		table.Append([]string{
			output.Cyan(p.Name),
			output.TypeColor(p.Type),
			fmt.Sprintf("%d", p.Port),
			p.RepoURL,
			p.Path,
		})
	}
	table.Render()
	return nil
}

func projectShowRun(name string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	p, err := resolveProject(ctx, s, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s\n", output.Cyan(p.Name))
	fmt.Fprintf(ui.Out, "  Path:      %s\n", p.Path)
	fmt.Fprintf(ui.Out, "  Type:      %s\n", output.TypeColor(p.Type))
	fmt.Fprintf(ui.Out, "  Port:      %d\n", p.Port)
	if p.RepoURL != "" {
		fmt.Fprintf(ui.Out, "  Repo:      %s\n", p.RepoURL)
	}
	fmt.Fprintf(ui.Out, "  Start:     %s\n", p.StartCmd)
	fmt.Fprintf(ui.Out, "  Created:   %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(ui.Out, "  Updated:   %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))

	// On-disk status
	if _, err := os.Stat(p.Path); err != nil {
		fmt.Fprintf(ui.Out, "  Status:    %s\n", output.Red("missing on disk"))
	} else {
		fmt.Fprintf(ui.Out, "  Status:    %s\n", output.Green("on disk"))
	}
	return nil
}

func projectRemoveRun(nameOrPath string) error {
	c, err := getCoordinator()
	if err != nil {
		return err
	}
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	p, err := resolveProject(ctx, s, nameOrPath)
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would remove project: %s", p.Name)
		if projectRemoveFiles {
			ui.DryRunMsg("Would delete directory: %s", p.Path)
		}
		return nil
	}

	if err := s.DeleteProject(ctx, p.ID); err != nil {
		return fmt.Errorf("remove project: %w", err)
	}

	if projectRemoveFiles {
		if err := c.Workspace().Remove(p.Name); err != nil {
			ui.Warning("Could not delete %s: %v", p.Path, err)
		} else {
			ui.VerboseLog("Deleted directory: %s", p.Path)
		}
	}

	ui.Success("Removed project: %s", output.Cyan(p.Name))
	return nil
}
