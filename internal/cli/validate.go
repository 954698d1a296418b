package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talgya/loom/internal/content"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateSummary is the result payload for a clean pack.
type ValidateSummary struct {
	Dir     string `json:"dir"`
	Entries int    `json:"entries"`
}

func (s ValidateSummary) String() string {
	return fmt.Sprintf("content pack %s is valid (%d entries)", s.Dir, s.Entries)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <content-dir>",
		Short: "Validate a content pack",
		Long: `Validate CUE content packs without running a simulation.

All errors are collected and reported together.

Example:
  loom validate ./content
  loom validate ./content --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validatePack(opts, args[0], cmd)
		},
	}

	return cmd
}

func validatePack(opts *ValidateOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	catalog, errs := content.LoadPacks(dir, content.LoadModeCollectAll)
	if len(errs) > 0 {
		details := make([]ErrorDetail, 0, len(errs))
		for _, err := range errs {
			if loadErr, ok := err.(*content.LoadError); ok {
				details = append(details, ErrorDetail{Code: loadErr.Code, Message: loadErr.Message})
				continue
			}
			details = append(details, ErrorDetail{Code: content.ErrCodeGeneric, Message: err.Error()})
		}
		if writeErr := formatter.Errors(details); writeErr != nil {
			return writeErr
		}
		return NewExitError(ExitFailure, fmt.Sprintf("content pack has %d error(s)", len(errs)))
	}

	return formatter.Success(ValidateSummary{Dir: dir, Entries: catalog.Len()})
}
