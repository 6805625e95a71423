package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smbc/backend/internal/infrastructure/config"
	"github.com/smbc/backend/internal/infrastructure/migration"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect PostgreSQL schema migrations",
	}

	run := func(use, short string, fn func(cmd *cobra.Command, m *migration.Migrator) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := openRuntime(cmd.Context(), *configPath, false)
				if err != nil {
					return err
				}
				defer rt.Close()

				if rt.cfg.Database.Driver != config.DriverPostgres {
					return fmt.Errorf("migrations target PostgreSQL; the %s schema is created from the models", rt.cfg.Database.Driver)
				}
				m, err := migration.NewFromURL(rt.cfg.Database.DSN(), rt.log)
				if err != nil {
					return err
				}
				defer m.Close()
				return fn(cmd, m)
			},
		}
	}

	cmd.AddCommand(
		run("up", "Apply all pending migrations", func(_ *cobra.Command, m *migration.Migrator) error {
			return m.Up()
		}),
		run("down", "Roll back all migrations", func(_ *cobra.Command, m *migration.Migrator) error {
			return m.Down()
		}),
		run("version", "Show the applied migration version", func(cmd *cobra.Command, m *migration.Migrator) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "version %d dirty=%t\n", version, dirty)
			return err
		}),
	)
	return cmd
}
