package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nodeboxhq/nodebox/internal/session"
)

var shareCmd = &cobra.Command{
	Use:   "share <project>",
	Short: "Print a shareable link for an imported project",
	Long: `Print a link that encodes a project's repository URL and start
command. Another nodebox user can open the link to reproduce the import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shareRun(args[0])
	},
}

var shareOpenCmd = &cobra.Command{
	Use:   "open <link>",
	Short: "Import the repository encoded in a share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shareOpenRun(args[0])
	},
}

func init() {
	shareCmd.AddCommand(shareOpenCmd)
	rootCmd.AddCommand(shareCmd)
}

func shareRun(name string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	p, err := resolveProject(ctx, s, name)
	if err != nil {
		return err
	}
	if p.RepoURL == "" {
		return fmt.Errorf("project %s has no repository URL; only imported projects can be shared", p.Name)
	}

	link := session.ShareLink{RepoURL: p.RepoURL, Cmd: p.StartCmd}
	fmt.Fprintln(ui.Out, link.Encode(viper.GetString("preview.base_url")))
	return nil
}

func shareOpenRun(raw string) error {
	link, err := session.ParseShareLink(raw)
	if err != nil {
		return err
	}

	if err := importRun(link.RepoURL); err != nil {
		return err
	}
	if link.Cmd != "" {
		ui.Info("Shared start command: %s", link.Cmd)
	}
	return nil
}
