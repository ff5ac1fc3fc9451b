package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

var errRejected = errors.New("number rejected")

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [number]",
		Short: "Validate a number and print where the call would be routed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := appCtx.Service.Screen(cmd.Context(), args[0])

			if !s.Routed() {
				printf(cmd, "%s: %s\n", s.State, s.Message)
				return errRejected
			}

			printf(cmd, "%s -> %s (screen: %s)\n", s.PhoneNumber, s.Decision, s.Destination.Screen)
			return nil
		},
	}
}
