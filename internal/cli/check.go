package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrCheckFailed is returned by check when a model was rejected.
var ErrCheckFailed = errors.New("check failed")

func newCheckCmd(flags *sourceFlags) *cobra.Command {
	var strict bool

	c := &cobra.Command{
		Use:   "check",
		Short: "Document every model without writing output; fail on rejected models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			set, diags, err := run(cmd.Context(), cfg, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d models, %d errors, %d warnings\n",
				len(set.Elements), len(diags.Errors), len(diags.Warnings))

			if diags.HasErrors() {
				return fmt.Errorf("%w: %d models rejected", ErrCheckFailed, len(diags.Errors))
			}

			if strict && len(diags.Warnings) > 0 {
				return fmt.Errorf("%w: %d warnings", ErrCheckFailed, len(diags.Warnings))
			}

			return nil
		},
	}

	c.Flags().BoolVar(&strict, "strict", false, "Fail on warnings too")

	return c
}
