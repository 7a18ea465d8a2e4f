package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nodeboxhq/nodebox/internal/preview"
)

var (
	serveTargetPort int
	serveStop       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [project]",
	Short: "Serve a preview proxy for a running dev server",
	Long: `Start a reverse proxy in front of an already-running dev server.

With a project argument the proxy targets the project's default port;
use --target to point it somewhere else. Requests made before the dev
server is up return 502 until it accepts connections.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return serveRun(name)
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().IntVar(&serveTargetPort, "target", 0, "Dev server port to proxy to")
	serveCmd.Flags().BoolVar(&serveStop, "stop", false, "Stop a running preview proxy")
	_ = viper.BindPFlag("preview.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

// previewPIDFile returns the PID file used to track a running preview proxy.
func previewPIDFile() (*preview.PIDFile, error) {
	dir, err := configDirFunc()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return preview.NewPIDFile(filepath.Join(dir, "preview.pid")), nil
}

func serveRun(name string) error {
	pf, err := previewPIDFile()
	if err != nil {
		return err
	}

	if serveStop {
		pid, running := pf.IsRunning()
		if !running {
			ui.Info("No preview proxy running")
			return nil
		}
		if err := pf.Signal(syscall.SIGTERM); err != nil {
			return fmt.Errorf("stop preview proxy (pid %d): %w", pid, err)
		}
		_ = pf.Remove()
		ui.Success("Stopped preview proxy (pid %d)", pid)
		return nil
	}

	if pid, running := pf.IsRunning(); running {
		return fmt.Errorf("preview proxy already running (pid %d); use --stop first", pid)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	target := serveTargetPort
	if name != "" {
		s, err := getStore()
		if err != nil {
			return err
		}
		p, err := resolveProject(ctx, s, name)
		if err != nil {
			return err
		}
		if target == 0 {
			target = p.Port
		}
	}
	if target == 0 {
		return fmt.Errorf("no target port: pass a project name or --target")
	}

	listenPort := viper.GetInt("preview.port")
	proxy := preview.NewProxy(target)

	if err := pf.Write(); err != nil {
		ui.Warning("Could not write PID file: %v", err)
	} else {
		defer func() { _ = pf.Remove() }()
	}

	ui.Info("Proxying %s -> %s", preview.LocalURL(listenPort), preview.LocalURL(target))
	return proxy.ListenAndServe(ctx, listenPort)
}
