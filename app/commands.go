package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"finance-insights/api"
	"finance-insights/config"
	"finance-insights/database"
)

// NewRootCommand builds the finsight CLI
func NewRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "finsight",
		Short:         "Personal finance loaders and loan insights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newETLCommand(cfg),
		newLoanInsightCommand(cfg),
		newMigrateCommand(cfg),
		newServeCommand(cfg),
	)
	return root
}

func newETLCommand(cfg *config.Config) *cobra.Command {
	var opts ETLOptions

	cmd := &cobra.Command{
		Use:   "etl",
		Short: "Append a CSV file to the investments table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := New(cfg)
			defer a.Close()
			_, err := a.RunETL(cmd.Context(), opts)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "CSV file to load (default $ETL_CSV_PATH)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "target table without schema (default $ETL_TABLE)")
	return cmd
}

func newLoanInsightCommand(cfg *config.Config) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "loan-insight",
		Short: "Forecast next month's loans, explain the trend and save the insight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := New(cfg)
			defer a.Close()

			insight, err := a.RunLoanInsight(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, insight.Prediction)
			if dryRun {
				fmt.Fprintln(out, insight.ContextSummary)
				fmt.Fprintln(out, insight.Explanation)
				return nil
			}
			fmt.Fprintln(out, "✅ Loan Insight (theme-enriched) saved successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the insight instead of saving it")
	return cmd
}

func newMigrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := New(cfg)
			defer a.Close()
			return a.Migrate()
		},
	}
}

func newServeCommand(cfg *config.Config) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the investments and insights HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := New(cfg)
			defer a.Close()
			if err := a.Connect(); err != nil {
				return err
			}

			srv := api.NewServer(a.investmentsRepo(database.TableInvestments), a.insightsRepo())
			return srv.Start(cmd.Context(), port)
		},
	}

	cmd.Flags().IntVar(&port, "port", cfg.Port, "listen port (default $PORT)")
	return cmd
}
