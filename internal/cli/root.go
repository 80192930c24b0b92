package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"element-autodoc/internal/config"
)

// sourceFlags are shared by every command that runs the engine.
type sourceFlags struct {
	configPath string
}

// NewRootCommand returns the autodoc root command with subcommands attached.
func NewRootCommand() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Document element models from Go packages or a universe manifest",
		Long: `autodoc finds every type registered as an element model, resolves the
factory that builds it and the data it accepts, and writes a document set
describing each model's key, name, group, description and parameters.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to an autodoc.yaml config file")
	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	cmd.PersistentFlags().StringSlice("pkg", nil, "Go package patterns to analyze (e.g. ./examples/...)")
	cmd.PersistentFlags().String("manifest", "", "Path of a YAML universe manifest")
	cmd.PersistentFlags().String("key-pattern", "", "Regular expression every model key must match")
	cmd.PersistentFlags().Int("workers", 0, "Models documented in parallel (0 = GOMAXPROCS)")
	cmd.PersistentFlags().Bool("record-time", false, "Stamp every element with the run time")

	cmd.AddCommand(newGenerateCmd(&flags))
	cmd.AddCommand(newCheckCmd(&flags))

	return cmd
}

// loadConfig reads the configuration with the command's flags bound over it.
func loadConfig(cmd *cobra.Command, flags *sourceFlags) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		ConfigFile: flags.configPath,
		Flags:      cmd.Flags(),
	})
}

// newLogger creates the diagnostics logger writing to w.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  log.InfoLevel,
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}
