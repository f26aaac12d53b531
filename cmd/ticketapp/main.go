package main

import (
	"os"

	"github.com/spf13/cobra"

	"ticketapp/internal/interfaces/cli/migrate"
	"ticketapp/internal/interfaces/cli/server"
	"ticketapp/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ticketapp",
		Short: "ticketapp - bug and test case tracker",
		Long:  `ticketapp tracks bug reports and test cases through a status workflow, with an HTTP API, migrations and account administration.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
