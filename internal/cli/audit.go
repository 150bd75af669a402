package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tannerhall/intentaudit/internal/audit"
	"github.com/tannerhall/intentaudit/internal/header"
	"github.com/tannerhall/intentaudit/internal/rules"
	"github.com/tannerhall/intentaudit/internal/store"
	"github.com/tannerhall/intentaudit/internal/workbook"
)

// AuditOptions holds flags for the audit command.
type AuditOptions struct {
	*RootOptions
	Rules          string
	Database       string
	MismatchesOnly bool

	SkipTables     []string
	LegacyMarker   string
	TriggerKey     string
	ActionKey      string
	RecommendedKey string
	OverrideKey    string

	// RunIDGenerator overrides run ID generation (for testing).
	RunIDGenerator audit.RunIDGenerator
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "audit <workbook.xlsx>",
		Short: "Audit a workbook against a rule set",
		Long: `Audit every qualifying sheet of an xlsx workbook: re-classify each
row's trigger phrase and report rows whose recorded action disagrees with
the prediction.

Sheets are skipped when named in --skip, when their name contains the
legacy marker, or when they lack the required trigger and action columns;
skipped sheets appear in the report with their reason.

Exits 1 when mismatches are found, so the command can gate automation.

Example:
  intentaudit audit --rules rules.json intake.xlsx
  intentaudit audit --rules ./rulepack --db history.db --mismatches-only intake.xlsx`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Rules, "rules", "", "path to rule set (.json/.yaml file or CUE directory)")
	_ = cmd.MarkFlagRequired("rules")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to record the run in (optional)")
	cmd.Flags().BoolVar(&opts.MismatchesOnly, "mismatches-only", false, "report only mismatching rows")

	cmd.Flags().StringSliceVar(&opts.SkipTables, "skip", nil, "sheet names to always skip")
	cmd.Flags().StringVar(&opts.LegacyMarker, "legacy-marker", "OLD", "substring marking a sheet as legacy (empty disables)")
	cmd.Flags().StringVar(&opts.TriggerKey, "trigger-key", "triggerphrase", "normalized key of the trigger column")
	cmd.Flags().StringVar(&opts.ActionKey, "action-key", "action", "normalized key of the action column")
	cmd.Flags().StringVar(&opts.RecommendedKey, "recommended-key", "recommended", "normalized key of the optional recommended column")
	cmd.Flags().StringVar(&opts.OverrideKey, "override-key", "override", "normalized key of the optional override column")

	return cmd
}

func runAudit(opts *AuditOptions, workbookPath string, cmd *cobra.Command) error {
	rs, err := rules.Load(opts.Rules)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load rules", err)
	}
	if findings := rules.Validate(rs); rules.HasErrors(findings) {
		errCount := 0
		for _, f := range findings {
			if f.Severity == rules.SeverityError {
				errCount++
			}
		}
		return WrapExitError(ExitCommandError, "rule set invalid",
			fmt.Errorf("%d validation error(s); run 'intentaudit validate %s'", errCount, opts.Rules))
	}

	wb, err := workbook.Open(workbookPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open workbook", err)
	}
	defer func() {
		if closeErr := wb.Close(); closeErr != nil {
			slog.Error("error closing workbook", "error", closeErr)
		}
	}()

	cfg := header.Config{
		SkipTables:     opts.SkipTables,
		LegacyMarker:   opts.LegacyMarker,
		TriggerKey:     opts.TriggerKey,
		ActionKey:      opts.ActionKey,
		RecommendedKey: opts.RecommendedKey,
		OverrideKey:    opts.OverrideKey,
	}

	var runnerOpts []audit.RunnerOption
	if opts.RunIDGenerator != nil {
		runnerOpts = append(runnerOpts, audit.WithRunIDGenerator(opts.RunIDGenerator))
	}

	report, err := audit.NewRunner(rs, cfg, runnerOpts...).Run(wb)
	if err != nil {
		return WrapExitError(ExitFailure, "audit failed", err)
	}

	if opts.Database != "" {
		if err := persistReport(cmd, opts.Database, report); err != nil {
			return err
		}
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		renderReportText(cmd, report, opts.MismatchesOnly)
	}

	if n := report.Totals.Mismatches; n > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("audit found %d mismatch(es)", n))
	}
	return nil
}

func persistReport(cmd *cobra.Command, dbPath string, report *audit.Report) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := st.WriteReport(cmd.Context(), report); err != nil {
		return WrapExitError(ExitCommandError, "failed to record run", err)
	}
	slog.Info("run recorded", "run_id", report.RunID, "db", dbPath)
	return nil
}

// renderReportText renders a human-readable report.
func renderReportText(cmd *cobra.Command, report *audit.Report, mismatchesOnly bool) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Run %s (rules %.12s)\n", report.RunID, report.RulesHash)

	for _, table := range report.Tables {
		fmt.Fprintf(out, "\n%s: %d row(s), %d mismatch(es)\n", table.Name, table.Rows, table.Mismatches)
		for _, f := range table.Findings {
			if mismatchesOnly && !f.Mismatch {
				continue
			}
			marker := "  ok      "
			if f.Mismatch {
				marker = "  MISMATCH"
			}
			fmt.Fprintf(out, "%s row %d: %q\n", marker, f.Row, f.Trigger)
			if f.Mismatch {
				fmt.Fprintf(out, "            current:   %s\n", f.Current)
				fmt.Fprintf(out, "            predicted: %s (pattern %q)\n", f.Predicted.Action, f.Predicted.Pattern)
			}
		}
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintln(out, "\nSkipped:")
		for _, s := range report.Skipped {
			fmt.Fprintf(out, "  %s: %s\n", s.Name, s.Reason)
		}
	}

	t := report.Totals
	fmt.Fprintf(out, "\nTotals: %d table(s) audited, %d skipped, %d row(s), %d mismatch(es)\n",
		t.Tables, t.Skipped, t.Rows, t.Mismatches)
}
