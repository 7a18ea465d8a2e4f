package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nodeboxhq/nodebox/internal/classify"
	"github.com/nodeboxhq/nodebox/internal/output"
	"github.com/nodeboxhq/nodebox/internal/preview"
)

var (
	runCommand     string
	runPreview     bool
	runPreviewPort int
)

var runCmd = &cobra.Command{
	Use:   "run <project>",
	Short: "Run a project's dev server",
	Long: `Run a project's start command, streaming its output and watching it
for the dev-server port, readiness, and errors.

With --preview, a local reverse proxy is started in front of the dev
server and retargeted when the server announces a different port.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRun(args[0])
	},
}

func init() {
	runCmd.Flags().StringVarP(&runCommand, "cmd", "c", "", "Override the start command")
	runCmd.Flags().BoolVarP(&runPreview, "preview", "p", false, "Serve a local preview proxy in front of the dev server")
	runCmd.Flags().IntVar(&runPreviewPort, "preview-port", 0, "Preview proxy listen port (default from config)")
	rootCmd.AddCommand(runCmd)
}

func runRun(name string) error {
	c, err := getCoordinator()
	if err != nil {
		return err
	}
	s, err := getStore()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := resolveProject(ctx, s, name)
	if err != nil {
		return err
	}

	command := runCommand
	if command == "" {
		command = p.StartCmd
	}

	if dryRun {
		ui.DryRunMsg("Would run in %s: %s", p.Path, command)
		return nil
	}

	listenPort := runPreviewPort
	if listenPort == 0 {
		listenPort = viper.GetInt("preview.port")
	}

	var proxy *preview.Proxy
	if runPreview {
		proxy = preview.NewProxy(p.Port)
		go func() {
			if err := proxy.ListenAndServe(ctx, listenPort); err != nil {
				ui.Error("Preview proxy: %v", err)
			}
		}()
	}

	ui.Info("Running %s: %s", output.Cyan(p.Name), command)

	var announce sync.Once
	onLine := func(line string, sig classify.Signal) {
		ui.Console(line)
		if sig.HasPort() {
			if proxy != nil {
				proxy.SetTargetPort(sig.Port)
			}
			announce.Do(func() {
				ui.Info("Dev server detected on port %d", sig.Port)
				if proxy != nil {
					go announcePreview(ctx, sig.Port, listenPort)
				}
			})
		}
		if sig.Ready {
			ui.VerboseLog("Server reported ready")
		}
	}

	sess, handle, err := c.Start(ctx, p, command, onLine)
	if err != nil {
		return fmt.Errorf("start %s: %w", p.Name, err)
	}

	if proxy != nil {
		// The dev server may never announce a port; fall back to the
		// project's default.
		go announcePreview(ctx, p.Port, listenPort)
	}

	waitErr := sess.Wait()
	status := handle.Snapshot()

	if status.Errored {
		ui.Warning("Dev server reported errors during the run")
	}
	if waitErr != nil {
		if ctx.Err() != nil {
			ui.Info("Stopped %s", output.Cyan(p.Name))
			return nil
		}
		return fmt.Errorf("%s exited: %w", p.Name, waitErr)
	}
	return nil
}

var previewAnnounced sync.Once

// announcePreview waits for the backend to accept connections, then prints
// the preview URL once per process.
func announcePreview(ctx context.Context, backendPort, listenPort int) {
	if err := preview.WaitForBackend(ctx, backendPort, preview.BackendWait); err != nil {
		return
	}
	previewAnnounced.Do(func() {
		ui.Success("Preview available at %s", preview.LocalURL(listenPort))
	})
}
