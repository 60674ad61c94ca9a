// Package commands holds the tasktrack command line.
package commands

import (
	"fmt"

	"github.com/jrazmi/tasktrack/app/tasktrack/config"
	"github.com/jrazmi/tasktrack/sdk/environment"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"github.com/spf13/cobra"
)

// app is shared by every command once the persistent flags are parsed.
type app struct {
	build      string
	envPrefix  string
	configPath string
	envFile    string

	cfg config.Config
	log *logger.Logger
}

// NewRootCommand builds the command tree. Running the binary without a
// subcommand serves the api.
func NewRootCommand(build string) *cobra.Command {
	a := &app{build: build, envPrefix: config.AppName}

	root := &cobra.Command{
		Use:           "tasktrack",
		Short:         "Multi-user task tracking api",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "path to a .env file (default ./.env when present)")
	root.PersistentFlags().StringVar(&a.envPrefix, "env-prefix", config.AppName, "prefix for environment variables")

	serve := newServeCommand(a)
	root.RunE = serve.RunE

	root.AddCommand(serve)
	root.AddCommand(newMigrateCommand(a))
	root.AddCommand(newVersionCommand(a))

	return root
}

func (a *app) load() error {
	if err := environment.LoadPath(a.envFile); err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}

	cfg, err := config.Load(a.envPrefix, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logger)

	return nil
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		// Printing the version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tasktrack %s\n", a.build)
		},
	}
}
