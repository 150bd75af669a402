package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerhall/intentaudit/internal/rules"
)

// ValidationResult holds validation output for one rules source.
type ValidationResult struct {
	Valid    bool                    `json:"valid"`
	Errors   []rules.ValidationError `json:"errors,omitempty"`
	Warnings []rules.ValidationError `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <rules-path>",
		Short: "Validate a rule set without running an audit",
		Long: `Validate an intent rule set (a .json/.yaml file or a CUE directory).

Checks structure: duplicate actions, rules entries missing from
actions_order, a fallback action outside actions_order, and patterns that
fail to compile. Pattern problems are warnings - the classifier skips bad
patterns at run time - but everything else blocks an audit.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, rulesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	rs, err := rules.Load(rulesPath)
	if err != nil {
		var loadErr *rules.LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return WrapExitError(ExitCommandError, "failed to load rules", err)
		}
		return WrapExitError(ExitCommandError, "failed to load rules", err)
	}

	findings := rules.Validate(rs)
	result := ValidationResult{Valid: !rules.HasErrors(findings)}
	for _, f := range findings {
		if f.Severity == rules.SeverityError {
			result.Errors = append(result.Errors, f)
		} else {
			result.Warnings = append(result.Warnings, f)
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		renderValidationText(cmd, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("rule set invalid: %d error(s)", len(result.Errors)))
	}
	return nil
}

func renderValidationText(cmd *cobra.Command, result ValidationResult) {
	out := cmd.OutOrStdout()
	if result.Valid {
		fmt.Fprintln(out, "Rule set is valid.")
	} else {
		fmt.Fprintf(out, "Rule set is INVALID: %d error(s).\n", len(result.Errors))
	}
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  error   [%s] %s: %s\n", e.Code, e.Field, e.Message)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  warning [%s] %s: %s\n", w.Code, w.Field, w.Message)
	}
}
