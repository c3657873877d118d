package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synclean",
	Short: "Make file and folder names acceptable to OneDrive-style sync clients",
	Long: `synclean renames files and folders in place so that a cloud sync client
accepts them: forbidden characters, reserved device names, trailing spaces
and periods, over-long names and undecodable bytes are fixed, and clashing
results get a -CopyN suffix instead of overwriting anything.

Every rename is written to <log-dir>/<folder>-rename.log.

Exit Codes:
  0  - Success (individual rename failures are listed in the log)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  14 - Folder not found, or no sync folder discovered`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
