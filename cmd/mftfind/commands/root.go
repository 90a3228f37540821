// Package commands implements mftfind's cobra command tree.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/mftfind/mftfind/internal/logging"
)

// Build-time version information, injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd is mftfind's entry point. Invoking it with a bare name argument
// performs a search directly; "version" and "update" are the only
// subcommands.
var RootCmd = &cobra.Command{
	Use:           "mftfind NAME",
	Short:         "Find files and folders on NTFS volumes by reading the MFT directly",
	Long:          `mftfind searches NTFS volumes for matching file or folder names by walking the Master File Table through the USN change journal, instead of recursing the directory tree.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSearch,
}

func init() {
	registerSearchFlags(RootCmd)
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(updateCmd)
}

// Execute runs the command tree and returns mftfind's process exit code.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		logging.Error(err.Error())
		return exitCodeFor(err)
	}
	return 0
}
