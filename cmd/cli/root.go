package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the CLI command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "byos-provisioner",
		Short: "Domo Cloud Amplifier (BYOS) provisioner",
		Long: `byos-provisioner creates a Snowflake Cloud Amplifier account on a Domo
instance, creates a BYOS integration for it, and assigns a warehouse with its
permitted activities to the integration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file")

	rootCmd.AddCommand(NewProvisionCommand())
	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
