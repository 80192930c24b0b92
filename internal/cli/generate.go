package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"element-autodoc/internal/document"
)

func newGenerateCmd(flags *sourceFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "generate",
		Short: "Write the document set of every model",
		Example: `  autodoc generate --pkg ./examples/... --output elements.json
  autodoc generate --manifest universe.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			format, err := cfg.OutputFormat()
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			set, _, err := run(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			if cfg.Output == "" || cfg.Output == "-" {
				data, err := document.Encode(set, format, cfg.Indent)
				if err != nil {
					return err
				}

				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			if err := document.WriteFile(set, cfg.Output, format, cfg.Indent); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			logger.Info("wrote document set", "path", cfg.Output, "format", format)

			return nil
		},
	}

	c.Flags().StringP("output", "o", "", "Output file path or '-' for stdout")
	c.Flags().StringP("format", "f", "", "Output format: json or yaml (default: from the output extension)")
	c.Flags().Bool("indent", true, "Pretty-print JSON output")

	return c
}
