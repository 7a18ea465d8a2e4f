package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodeboxhq/nodebox/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session status",
	Long: `Show the persisted session state: the last imported repository and
the saved preview settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun() error {
	c, err := getCoordinator()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if repo, ok := c.LastRepo(ctx); ok {
		fmt.Fprintf(ui.Out, "  Last repo:     %s (%s)\n", output.Cyan(repo.Name), repo.URL)
	} else {
		fmt.Fprintf(ui.Out, "  Last repo:     %s\n", output.Dim("(none)"))
	}

	st := c.LoadPreviewState(ctx)
	if st.URL != "" {
		fmt.Fprintf(ui.Out, "  Preview URL:   %s\n", st.URL)
	} else {
		fmt.Fprintf(ui.Out, "  Preview URL:   %s\n", output.Dim("(none)"))
	}
	fmt.Fprintf(ui.Out, "  Auto-refresh:  %v\n", st.AutoRefresh)
	fmt.Fprintf(ui.Out, "  Console open:  %v\n", st.ConsoleOpen)

	if pf, err := previewPIDFile(); err == nil {
		if pid, running := pf.IsRunning(); running {
			fmt.Fprintf(ui.Out, "  Proxy:         %s (pid %d)\n", output.Green("running"), pid)
		} else {
			fmt.Fprintf(ui.Out, "  Proxy:         %s\n", output.Dim("not running"))
		}
	}
	return nil
}
