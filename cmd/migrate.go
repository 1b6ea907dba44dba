package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/hyperstore/internal/presentation"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Long: `Open the database and apply any pending schema migrations.

An existing database file is copied to <path>.bak first unless
database.backup_before_migrate is false. Running migrate on an up-to-date
database is a no-op.

Examples:
  hyperstore migrate
  hyperstore migrate --db /var/lib/hyperstore/meta.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB(true)
			if err != nil {
				return err
			}
			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			version, _, err := db.SchemaVersion()
			if err != nil {
				return err
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).Format(presentation.MigrationDTO{
				Path:    db.Path(),
				Version: version,
			})
		},
	}
}
