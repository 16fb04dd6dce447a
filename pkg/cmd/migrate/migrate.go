package migrate

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/ghostlap-go/log"
	cmdutil "github.com/mpapenbr/ghostlap-go/pkg/cmd/util"
	"github.com/mpapenbr/ghostlap-go/pkg/config"
	"github.com/mpapenbr/ghostlap-go/pkg/db/migrate"
	"github.com/mpapenbr/ghostlap-go/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration for the postgres store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration()
		},
	}
	return cmd
}

func startMigration() error {
	// wait for database
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err := utils.WaitForTCP(postgresAddr, cmdutil.WaitForServices()); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	dbURL := prepareURLForDB(config.DB)
	log.Info("Migrating database", log.String("addr", postgresAddr))
	if err := migrate.MigrateDB(dbURL); err != nil {
		return err
	}
	log.Info("Database is up to date")
	return nil
}

func prepareURLForDB(url string) string {
	options := "sslmode=disable"
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.Contains(url, "?") {
		return fmt.Sprintf("%s&%s", url, options)
	} else {
		return fmt.Sprintf("%s?%s", url, options)
	}
}
