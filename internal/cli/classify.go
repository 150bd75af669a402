package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerhall/intentaudit/internal/intent"
	"github.com/tannerhall/intentaudit/internal/rules"
)

// ClassifyOptions holds flags for the classify command.
type ClassifyOptions struct {
	*RootOptions
	Rules string
}

// ClassifyResult is the output of a one-off classification.
type ClassifyResult struct {
	Trigger     string        `json:"trigger"`
	Recommended string        `json:"recommended,omitempty"`
	Result      intent.Result `json:"result"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClassifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "classify <trigger> [recommended]",
		Short: "Classify a single trigger phrase",
		Long: `Classify one trigger phrase (plus an optional recommended phrase)
against a rule set and print the predicted action and matching pattern.

Example:
  intentaudit classify --rules rules.json "create a new user"
  intentaudit classify --rules ./rulepack "find user" "create new one"`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			recommended := ""
			if len(args) == 2 {
				recommended = args[1]
			}
			return runClassify(opts, args[0], recommended, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Rules, "rules", "", "path to rule set (.json/.yaml file or CUE directory)")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func runClassify(opts *ClassifyOptions, trigger, recommended string, cmd *cobra.Command) error {
	rs, err := rules.Load(opts.Rules)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load rules", err)
	}

	result := ClassifyResult{
		Trigger:     trigger,
		Recommended: recommended,
		Result:      intent.NewClassifier(rs).Classify(trigger, recommended),
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (pattern %q)\n", result.Result.Action, result.Result.Pattern)
	return nil
}
