package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newServicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the input services described by the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, err := a.accessor(cmd.Context())
			if err != nil {
				return err
			}
			services := acc.Services()
			if len(services) == 0 {
				a.logger.Warn().Msg("schema declares no services")
				return nil
			}
			return a.write(fmt.Sprintln(strings.Join(services, "\n")))
		},
	}
}
