package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticketapp/internal/infrastructure/database"
	"ticketapp/internal/infrastructure/migration"
	"ticketapp/internal/interfaces/cli/bootstrap"
)

var (
	opts  bootstrap.Options
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the embedded schema migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Bring the schema up to date, rebuilding legacy ticket tables when found.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.Setup(opts)
	if err != nil {
		return err
	}
	defer bootstrap.Teardown()

	if err := migration.InitializeSchema(cmd.Context(), database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	version, err := migration.NewManager().Version(cmd.Context(), database.Get())
	if err != nil {
		return err
	}

	log.Infow("migrations completed successfully", "version", version)
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.Setup(opts)
	if err != nil {
		return err
	}
	defer bootstrap.Teardown()

	log.Infow("rolling back migrations", "steps", steps)

	if err := migration.NewManager().MigrateDown(cmd.Context(), database.Get(), steps); err != nil {
		log.Errorw("rollback failed", "error", err)
		return fmt.Errorf("rollback failed: %w", err)
	}

	log.Infow("rollback completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, _, err := bootstrap.Setup(opts)
	if err != nil {
		return err
	}
	defer bootstrap.Teardown()

	manager := migration.NewManager()
	version, err := manager.Version(cmd.Context(), database.Get())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "current version: %d\n", version)
	return manager.Status(cmd.Context(), database.Get())
}
