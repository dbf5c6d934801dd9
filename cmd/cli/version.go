package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/domo-community/byos-provisioner/internal/version"
)

// NewVersionCommand builds the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Printf("byos-provisioner %s", info.Version)
			if info.GitCommit != "" {
				fmt.Printf(" (%s)", info.GitCommit)
			}
			fmt.Printf(" %s %s\n", info.GoVersion, info.Platform)
		},
	}
}
