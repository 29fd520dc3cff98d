package main

import (
	"os"

	"github.com/spf13/cobra"

	"reviewrota/internal/domain/rotation"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Rotate reviewers for teams.",
	Long: `Assigns each team in the Teams tab a fresh reviewer set: team members
first, topped up with experienced developers from outside the team when the
team is too small.`,
	Run: func(cmd *cobra.Command, _ []string) {
		os.Exit(rotate(cmd.Context(), rotation.ModeTeams))
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(teamsCmd)
}
