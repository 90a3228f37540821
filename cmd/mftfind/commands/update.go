package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mftfind/mftfind/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the running binary with the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		latest, err := selfupdate.Update(cmd.Context(), Version)
		if err != nil {
			return &exitError{code: 1, err: err}
		}
		if latest == Version {
			fmt.Fprintf(cmd.OutOrStdout(), "mftfind %s is already the latest version\n", Version)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated mftfind %s -> %s\n", Version, latest)
		return nil
	},
}
