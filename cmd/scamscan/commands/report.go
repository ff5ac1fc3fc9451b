package commands

import (
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		reporter string
		comment  string
	)

	cmd := &cobra.Command{
		Use:   "report [number]",
		Short: "Record a scam report for a number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Service.ReportNumber(cmd.Context(), args[0], reporter, comment); err != nil {
				return err
			}

			reports, err := appCtx.Service.GetReports(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd, "Report received. %d report(s) on file for %s\n", len(reports), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reporter, "reporter", "", "reporter identifier (hashed before storage)")
	cmd.Flags().StringVar(&comment, "comment", "", "free-text comment")
	return cmd
}
