package commands

import (
	"fmt"

	"github.com/rpggio/worklog/internal/mcp"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server name and version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mcp.ServerName, mcp.ServerVersion)
		},
	}
}
