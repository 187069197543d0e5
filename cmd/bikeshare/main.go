// Command bikeshare trains the hire-count pipeline and serves predictions
// from the command line.
package main

//
// Main
//

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/bikeshare/config"
	"github.com/YuminosukeSato/bikeshare/pkg/log"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// load reads the configuration and configures logging. The --log-level flag
// wins over the file and the environment.
func (g *globalFlags) load() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.App.LogLevel = g.logLevel
	}
	if err := log.SetupLogger(cfg.App.LogLevel); err != nil {
		return nil, err
	}
	log.GetLoggerWithName("cli").Debug("Configuration loaded",
		log.ConfigFileKey, g.configPath,
		log.StoreKey, cfg.App.Store,
	)
	return cfg, nil
}

// newRootCommand builds the command tree. stdin and stdout are injected so
// tests can drive the commands.
func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Train and query the bike-share hire count model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "config.yml", "Path of the YAML configuration")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(trainSubcommand(g, stdout))
	root.AddCommand(predictSubcommand(g, stdin, stdout))
	root.AddCommand(versionsSubcommand(g, stdout))
	root.SetIn(stdin)
	root.SetOut(stdout)
	return root
}

func main() {
	root := newRootCommand(os.Stdin, os.Stdout)
	if err := root.Execute(); err != nil {
		slog.Error("bikeshare failed", log.ErrAttr(err))
		os.Exit(1)
	}
}
