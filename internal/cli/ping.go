package cli

import (
	"github.com/spf13/cobra"
)

func newPingCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the search backend answers",
		Long: `Send the sentinel probe query and report whether the backend answered with 2xx.

Exits with status 1 when the backend is unreachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := st.searchClient()
			ok := client.TestConnection(cmd.Context())
			st.printer(cmd).Status(ok, client.Endpoint(), "")
			if !ok {
				return &CLIError{
					Summary:    "search backend unreachable",
					Suggestion: "check --base-url and that the backend is running",
					ExitCode:   ExitGeneral,
				}
			}
			return nil
		},
	}
}
