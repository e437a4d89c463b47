package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/ofx"
	"github.com/Veraticus/tally/internal/pattern"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from bank exports",
	}

	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importOFXCmd() *cobra.Command {
	var (
		expenseCategory, incomeCategory string
		dryRun, noBackup, noRules       bool
	)

	cmd := &cobra.Command{
		Use:   "ofx <files...>",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Debits become expenses and credits become income. Transactions repeated
across files (same account and FITID) are imported once. Unless --no-backup
is given, a checkpoint of the database is taken first.

Rules under import.rules in the config file assign categories by
description. Entries no rule matches use --expense-category or
--income-category.`,
		Example: `  # Preview a single file
  tally import ofx ~/Downloads/chase_jan_2024.qfx --dry-run

  # Import several statements, filing everything under defaults
  tally import ofx ~/Downloads/*.qfx --expense-category "Other Expenses" --income-category "Other Income"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			opts := ofx.ImportOptions{DryRun: dryRun}
			if expenseCategory != "" {
				id, err := a.categoryID(ctx, expenseCategory)
				if err != nil {
					return fmt.Errorf("--expense-category: %w", err)
				}
				opts.ExpenseCategory = &id
			}
			if incomeCategory != "" {
				id, err := a.categoryID(ctx, incomeCategory)
				if err != nil {
					return fmt.Errorf("--income-category: %w", err)
				}
				opts.IncomeCategory = &id
			}

			if !noRules {
				categorize, err := a.importCategorizer(ctx)
				if err != nil {
					return err
				}
				opts.Categorize = categorize
			}

			entries := parseFiles(cmd, files)
			if len(entries) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("No transactions found to import"))
				return nil
			}

			if !dryRun && !noBackup {
				manager, err := a.store.NewCheckpointManager()
				if err != nil {
					return fmt.Errorf("failed to create checkpoint manager: %w", err)
				}
				if info, err := manager.AutoCheckpoint(ctx, "import"); err != nil {
					slog.Warn("Failed to create checkpoint before import", "error", err)
				} else {
					slog.Info("Created checkpoint before import", "id", info.ID)
				}
			}

			bar := progressbar.NewOptions(len(entries),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Importing"),
				progressbar.OptionClearOnFinish(),
			)
			opts.OnEntry = func(ofx.Entry) { _ = bar.Add(1) }

			result, err := ofx.Import(ctx, a.ledger, entries, opts)
			_ = bar.Finish()
			if err != nil {
				return err
			}

			for _, f := range result.Failures {
				fmt.Fprintf(out, "%s %s %s: %s\n",
					cli.ErrorStyle.Render(cli.ErrorIcon),
					f.Entry.Date.Format("2006-01-02"),
					f.Entry.Description,
					cli.ErrorMessage(f.Err))
			}

			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported", result.Skipped)))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d failed)", result.Added, len(result.Failures))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "parse and count without saving")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the checkpoint taken before importing")
	cmd.Flags().StringVar(&expenseCategory, "expense-category", "", "category for imported expenses")
	cmd.Flags().StringVar(&incomeCategory, "income-category", "", "category for imported income")
	cmd.Flags().BoolVar(&noRules, "no-rules", false, "ignore import.rules from the config file")

	return cmd
}

// importCategorizer builds the rule-based categorizer from config.
// It returns nil when no rules are configured.
func (a *app) importCategorizer(ctx context.Context) (func(ofx.Entry) (int64, bool), error) {
	rules, err := config.ImportRules(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pattern.NewMatcher(rules)
	if err != nil {
		return nil, err
	}
	categorizer, err := pattern.NewCategorizer(ctx, matcher, a.ledger)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded import rules", "count", len(rules))

	return func(e ofx.Entry) (int64, bool) {
		return categorizer.Categorize(pattern.Candidate{
			Type:        e.Type,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}, nil
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

// parseFiles reads every file, dropping entries already seen in an earlier one.
// Unreadable files are logged and skipped.
func parseFiles(cmd *cobra.Command, files []string) []ofx.Entry {
	parser := ofx.NewParser()
	seen := make(map[string]bool)

	var entries []ofx.Entry
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}
		parsed, err := parser.ParseFile(cmd.Context(), f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		added := 0
		for _, e := range parsed {
			key := e.AccountID + "/" + e.FITID
			if e.FITID != "" && seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, e)
			added++
		}

		slog.Info("Processed file",
			"file", filepath.Base(path),
			"transactions_found", len(parsed),
			"added", added,
			"duplicates", len(parsed)-added)
	}
	return entries
}
