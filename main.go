package main

import (
	"context"
	"errors"
	"io/fs"
	"iwadcs/account"
	"iwadcs/client/es"
	"iwadcs/client/s3"
	"iwadcs/compliance"
	"iwadcs/event"
	"iwadcs/findings"
	"iwadcs/infra/tracing"
	"iwadcs/misc"
	"iwadcs/notification"
	"iwadcs/persistence"
	"iwadcs/report"
	"iwadcs/sequence"
	"iwadcs/servehttp"
	"iwadcs/sessions"
	"iwadcs/workorder"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultHTTPAddr = ":8080"

var rootCmd = &cobra.Command{
	Use:           "iwadcs",
	Short:         "Maintenance work order service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		misc.SetupLogger()
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDatabase()
		if err != nil {
			return err
		}
		defer ds.Stop()
		return migrate(ds)
	},
}

var bootstrapUsersCmd = &cobra.Command{
	Use:   "bootstrap-users",
	Short: "Write the demo accounts, overwriting existing ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := openDatabase()
		if err != nil {
			return err
		}
		defer ds.Stop()
		if err := migrate(ds); err != nil {
			return err
		}
		return account.BootstrapSampleUsers(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, bootstrapUsersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logrus.Info("service start")

	closer, err := tracing.Setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	ds, err := openDatabase()
	if err != nil {
		return err
	}
	defer ds.Stop()

	// database migration (race condition between replicas)
	if err := migrate(ds); err != nil {
		return err
	}

	if _, err := es.CreateClientFromEnv(); err != nil {
		return err
	}
	if es.Enabled() {
		crontab, err := findings.StartCron()
		if err != nil {
			return err
		}
		defer crontab.Stop()
	}
	if err := s3.Bootstrap(); err != nil {
		return err
	}
	sessions.LoginAttemptsPerMinute = sessions.LoginRateLimitFromEnv()
	event.EventHandlers = append(event.EventHandlers, findings.IndexWorkOrderEventHandle, report.ArchiveEventHandle)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = defaultHTTPAddr
	}
	return servehttp.StartHTTPServer(addr, servehttp.NewEngine())
}

func openDatabase() (*persistence.DataSourceManager, error) {
	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		return nil, err
	}

	// create database (no conflict)
	if dbConfig.DriverType == persistence.DriverMysql {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			return nil, err
		}
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		return nil, err
	}
	persistence.ActiveDataSourceManager = ds
	return ds, nil
}

func migrate(ds *persistence.DataSourceManager) error {
	return persistence.Migrate(ds.GormDB(context.Background()),
		&account.User{}, &workorder.WorkOrder{}, &sequence.Counter{}, &event.EventRecord{},
		&notification.Notification{}, &compliance.Report{})
}
