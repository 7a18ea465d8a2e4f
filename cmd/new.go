package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nodeboxhq/nodebox/internal/output"
	"github.com/nodeboxhq/nodebox/internal/scaffold"
)

var (
	newType        string
	newDescription string
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new project in the workspace",
	Long: `Scaffold a new Node.js project from a framework template.

The name is slugified for the directory and package name. Supported
types: ` + strings.Join(typeNames(), ", ") + `. Unknown types fall back to node.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newRun(args[0])
	},
}

func init() {
	newCmd.Flags().StringVarP(&newType, "type", "t", "node", "Project type")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Project description")
	rootCmd.AddCommand(newCmd)
}

func typeNames() []string {
	types := scaffold.AllTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func newRun(name string) error {
	c, err := getCoordinator()
	if err != nil {
		return err
	}

	if dryRun {
		slug := scaffold.Slugify(name)
		projType := scaffold.ParseType(newType)
		ui.DryRunMsg("Would scaffold %s project: %s", projType, slug)
		for _, path := range scaffold.SortedPaths(scaffold.Generate(scaffold.Options{
			Name:        slug,
			Type:        projType,
			Description: newDescription,
		})) {
			fmt.Fprintf(ui.Out, "  %s\n", path)
		}
		return nil
	}

	p, err := c.CreateProject(context.Background(), name, newType, newDescription)
	if err != nil {
		return err
	}

	ui.Success("Created %s project: %s", output.TypeColor(p.Type), output.Cyan(p.Name))
	ui.Info("Path: %s", p.Path)

	projType := scaffold.ParseType(p.Type)
	fmt.Fprintln(ui.Out)
	ui.Info("Quick start:")
	fmt.Fprintf(ui.Out, "  cd %s\n", p.Path)
	for _, step := range projType.QuickStart() {
		fmt.Fprintf(ui.Out, "  %s\n", step)
	}
	return nil
}
