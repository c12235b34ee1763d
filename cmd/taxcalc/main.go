package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rpgo/tax-estimator/internal/calculation"
	"github.com/rpgo/tax-estimator/internal/config"
	"github.com/rpgo/tax-estimator/internal/domain"
	"github.com/rpgo/tax-estimator/internal/output"
	"github.com/rpgo/tax-estimator/internal/taxrules"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taxcalc",
		Short:         "Self-employed tax liability estimator",
		Long:          "Estimates income tax and social contributions for self-employed income in the UK, Ireland and the US",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("se-adjustment", false, "Apply the US 92.35% net-earnings factor to self-employment tax")

	root.AddCommand(calculateCmd(), yearsCmd(), compareCmd(), validateCmd(), initCmd(), versionCmd())
	return root
}

// newEngine wires the rules provider, engine and logger from the persistent flags.
func newEngine(cmd *cobra.Command) (*calculation.Engine, *taxrules.Provider) {
	var opts []taxrules.Option
	if adj, _ := cmd.Flags().GetBool("se-adjustment"); adj {
		opts = append(opts, taxrules.WithSelfEmploymentAdjustment())
	}
	rules := taxrules.NewProvider(opts...)
	engine := calculation.NewEngine(rules)

	level, _ := cmd.Flags().GetString("log-level")
	engine.SetLogger(newSlogLogger(cmd.ErrOrStderr(), level))
	return engine, rules
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Estimate the tax liability for an income statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, rules := newEngine(cmd)
			statement, err := config.NewInputParser(rules).LoadFromFile(args[0])
			if err != nil {
				return err
			}

			taxYear := statement.TaxYear
			if override, _ := cmd.Flags().GetString("tax-year"); override != "" {
				taxYear = override
			}
			report, err := engine.Estimate(context.Background(), domain.Country(statement.Country), taxYear, statement.Inputs())
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			f, err := output.ResolveFormatter(format)
			if err != nil {
				return err
			}

			if dir, _ := cmd.Flags().GetString("out"); dir != "" {
				filename, err := output.WriteFormatted(f, report, dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	cmd.Flags().StringP("out", "o", "", "Write the report into this directory instead of stdout")
	cmd.Flags().String("tax-year", "", "Tax year to use, overriding the input file")
	return cmd
}

func yearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "years [country]",
		Short: "List the tax years configured for a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			country, err := domain.ParseCountry(args[0])
			if err != nil {
				return err
			}
			_, rules := newEngine(cmd)
			years, err := rules.TaxYears(country)
			if err != nil {
				return err
			}
			current, err := rules.CurrentTaxYear(country)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tax years for %s:\n", country.Name())
			for _, y := range years {
				marker := " "
				if y.Value == current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-8s %s to %s\n", marker, y.Label,
					y.StartDate.Format("2006-01-02"), y.EndDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the liability for one statement across all configured tax years",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, rules := newEngine(cmd)
			statement, err := config.NewInputParser(rules).LoadFromFile(args[0])
			if err != nil {
				return err
			}
			reports, err := engine.CompareTaxYears(context.Background(), domain.Country(statement.Country), statement.Inputs())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output.ComparisonTable(reports))
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an income statement file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rules := newEngine(cmd)
			statement, err := config.NewInputParser(rules).LoadFromFile(args[0])
			if err != nil {
				return err
			}
			year := statement.TaxYear
			if year == "" {
				year = "current tax year"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %s, %s, %d other income item(s), %d expense(s)\n",
				args[0], domain.Country(statement.Country).Name(), year, len(statement.OtherIncome), len(statement.Expenses))
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [country] [output-file]",
		Short: "Write a starter income statement for a country",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			country, err := domain.ParseCountry(args[0])
			if err != nil {
				return err
			}
			path := args[1]
			if force, _ := cmd.Flags().GetBool("force"); !force && fileExists(path) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			_, rules := newEngine(cmd)
			taxYear, _ := cmd.Flags().GetString("tax-year")
			if taxYear == "" {
				if taxYear, err = rules.CurrentTaxYear(country); err != nil {
					return err
				}
			}
			statement := &domain.Statement{
				Country: string(country),
				TaxYear: taxYear,
				OtherIncome: []domain.IncomeItem{
					{Description: "Other income"},
				},
				Expenses: []domain.ExpenseItem{
					{Description: "Allowable expense", Deductible: true},
					{Description: "Non-allowable expense"},
				},
			}
			if err := config.NewInputParser(rules).ValidateStatement(statement); err != nil {
				return err
			}
			if err := config.SaveStatement(statement, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Statement for %s %s written to %s\n", country.Name(), taxYear, path)
			return nil
		},
	}
	cmd.Flags().String("tax-year", "", "Tax year to write (default: the current one)")
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}
