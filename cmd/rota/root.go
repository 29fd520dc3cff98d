package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var manualRun bool

var rootCmd = &cobra.Command{
	Use:   "rota",
	Short: "rota assigns code reviewers to developers and teams on a schedule.",
	Long: `rota reads rosters from Google Sheets spreadsheets, picks reviewers with
fairness constraints (preference lists, an experienced-reviewer guarantee,
cross-run load balancing) and writes the assignments back as a dated column.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("spreadsheet-ids", "", "spreadsheet ids to process (comma- or newline-separated)")
	rootCmd.PersistentFlags().String("credentials-file", "", "path to the service-account credentials JSON")
	rootCmd.PersistentFlags().BoolVar(&manualRun, "manual", false, "update the current rotation column instead of creating a new one")

	for key, flag := range map[string]string{
		"spreadsheet_ids":  "spreadsheet-ids",
		"credentials_file": "credentials-file",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "error", err)
			os.Exit(1)
		}
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("ROTA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
