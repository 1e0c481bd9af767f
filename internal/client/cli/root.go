package cli

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/jobkeeper/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the jobkeeper command tree. The config file named by
// -c is read before flags are parsed; flags override it.
func NewRootCommand() *cobra.Command {
	cfg := config.LoadConfig()

	root := &cobra.Command{
		Use:   "jobkeeper",
		Short: "JobKeeper - clients, jobs and invoices from the terminal",
		Long: `JobKeeper keeps track of clients, tasks, reminders, jobs, invoices and leads.

Data goes to the hosted backend when it is reachable and to a local store
when it is not. Run without a subcommand to start the interactive shell.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			a.Run(cmd.Context())
			return nil
		},
	}
	cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		reportCommand(cfg, "dashboard", "Show the business summary", (*App).Dashboard),
		reportCommand(cfg, "earnings", "Show paid totals per month and year", (*App).Earnings),
		reportCommand(cfg, "overdue [client-id]", "List tasks past their due date", (*App).Overdue),
		reportCommand(cfg, "export-invoice <invoice-id|number>", "Write an invoice as HTML", (*App).ExportInvoice),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
	)
	return root
}

type appRunner func(a *App, ctx context.Context, args []string) error

// reportCommand runs a single App command non-interactively.
func reportCommand(cfg *config.Config, use, short string, run appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			a.out = cmd.OutOrStdout()
			a.Start(cmd.Context())
			return run(a, cmd.Context(), args)
		},
	}
}
