package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nodeboxhq/nodebox/internal/github"
	"github.com/nodeboxhq/nodebox/internal/models"
	"github.com/nodeboxhq/nodebox/internal/output"
	"github.com/nodeboxhq/nodebox/internal/session"
	"github.com/nodeboxhq/nodebox/internal/store"
	"github.com/nodeboxhq/nodebox/internal/workspace"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui          *output.UI
	dataStore   store.Store
	coordinator *session.Coordinator

	verbose bool
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "nodebox",
	Short: "Nodebox - scaffold, import, and run Node.js projects",
	Long: `nodebox manages a local workspace of Node.js projects.
It scaffolds new projects from framework templates, imports GitHub
repositories (filling in whatever the network won't give it), and runs
dev servers while watching their output for ports, readiness, and errors.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return rootRun(cmd)
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/nodebox/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "nodebox")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("NODEBOX")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	home, _ := os.UserHomeDir()
	defaultConfigDir := filepath.Join(home, ".config", "nodebox")

	viper.SetDefault("workspace_dir", filepath.Join(home, "nodebox"))
	viper.SetDefault("db_path", filepath.Join(defaultConfigDir, "nodebox.db"))
	viper.SetDefault("github.api_base", "https://api.github.com")
	viper.SetDefault("github.raw_base", "https://raw.githubusercontent.com")
	viper.SetDefault("github.proxies", []string{})
	viper.SetDefault("preview.port", 4400)
	viper.SetDefault("preview.base_url", "https://nodebox.local")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun

	// Store and coordinator are initialized lazily — only when commands
	// actually need them. This allows config/version commands to run
	// without a db or workspace.
}

// rootRun handles `nodebox` with no subcommand: show the workspace dashboard.
func rootRun(cmd *cobra.Command) error {
	s, err := getStore()
	if err != nil {
		return cmd.Help()
	}

	ctx := context.Background()
	projects, err := s.ListProjects(ctx)
	if err != nil || len(projects) == 0 {
		return cmd.Help()
	}

	return projectListRun()
}

// getStore returns the shared store, initializing it on first call.
func getStore() (store.Store, error) {
	if dataStore != nil {
		return dataStore, nil
	}

	dbPath := viper.GetString("db_path")
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := s.Migrate(rootCmd.Context()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	dataStore = s
	return dataStore, nil
}

// getCoordinator returns the shared session coordinator, wiring the store,
// workspace, and GitHub client on first call.
func getCoordinator() (*session.Coordinator, error) {
	if coordinator != nil {
		return coordinator, nil
	}

	s, err := getStore()
	if err != nil {
		return nil, err
	}

	ws, err := workspace.New(viper.GetString("workspace_dir"))
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}

	fetcher := github.NewClient(
		viper.GetString("github.api_base"),
		viper.GetString("github.raw_base"),
		viper.GetStringSlice("github.proxies"),
	)

	coordinator = session.New(s, ws, fetcher)
	return coordinator, nil
}

// resolveProject looks a project up by name, then by path.
func resolveProject(ctx context.Context, s store.Store, nameOrPath string) (*models.Project, error) {
	if p, err := s.GetProjectByName(ctx, nameOrPath); err == nil {
		return p, nil
	}

	abs, err := filepath.Abs(nameOrPath)
	if err == nil {
		projects, lerr := s.ListProjects(ctx)
		if lerr == nil {
			for _, p := range projects {
				if p.Path == abs {
					return p, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("project not found: %s", nameOrPath)
}
