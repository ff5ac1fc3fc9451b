package commands

import (
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the known scam numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers := appCtx.Service.ListNumbers(cmd.Context())
			if len(numbers) == 0 {
				printf(cmd, "No scam numbers in database\n")
				return nil
			}
			for _, n := range numbers {
				printf(cmd, "%s\n", n)
			}
			return nil
		},
	}
}
