// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/bank-analyzer/internal/config"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Inputs    []string
	Output    string
	Format    string
	RankedCSV string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bank-analyzer",
		Short: "A CLI tool to assess inbound-fund risk from bank-statement exports.",
		Long: `bank-analyzer ingests bank-statement exports (CSV or XLSX), resolves their
loosely-structured columns, groups inflows by counterparty, and produces a
prioritized risk assessment of the top inflow sources for SME loan
underwriting.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to bank-analyzer!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringArrayVarP(&SharedFlags.Inputs, "input", "i", nil, "Input statement file (repeatable)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Report output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "json", "Report format (json or xml)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.RankedCSV, "ranked-csv", "", "Write the ranked records to a CSV file")
}
