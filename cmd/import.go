package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodeboxhq/nodebox/internal/output"
)

var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import a GitHub repository into the workspace",
	Long: `Import a GitHub repository into the workspace.

Files are fetched anonymously with a chain of fallbacks (raw host,
default branch, master, contents API, configured proxies). Whatever
cannot be fetched is synthesized from the detected framework template,
so the import always materializes a runnable project. Only an
unparseable URL fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importRun(args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importRun(rawURL string) error {
	c, err := getCoordinator()
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would import repository: %s", rawURL)
		return nil
	}

	res, p, err := c.ImportRepository(context.Background(), rawURL)
	if err != nil {
		return err
	}
	if res.Superseded {
		ui.Warning("Import of %s was superseded by a newer import", res.Repo)
		return nil
	}

	ui.Success("Imported %s as %s project: %s", res.Repo, output.TypeColor(p.Type), output.Cyan(p.Name))
	ui.Info("Path: %s", p.Path)
	if res.Metadata != nil && res.Metadata.Description != "" {
		ui.VerboseLog("Description: %s", res.Metadata.Description)
	}

	fetched := len(res.FetchedPaths)
	synthesized := len(res.Files) - fetched
	ui.Info("%d files fetched, %d synthesized", fetched, synthesized)
	for _, path := range res.FetchedPaths {
		ui.VerboseLog("fetched: %s", path)
	}

	fmt.Fprintln(ui.Out)
	ui.Info("Run it with: nodebox run %s", p.Name)
	return nil
}
