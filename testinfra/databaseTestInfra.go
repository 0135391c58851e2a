package testinfra

import (
	"context"
	"iwadcs/persistence"
	"log"
	"strings"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
)

type TestDatabase struct {
	TestDatabaseName string
	DS               *persistence.DataSourceManager
}

// StartSqliteTestDatabase opens a private in-memory database, migrates the given models
// and activates it as persistence.ActiveDataSourceManager.
func StartSqliteTestDatabase(models ...interface{}) *TestDatabase {
	databaseName := "test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	dbConfig := &persistence.DatabaseConfig{
		DriverType: persistence.DriverSqlite,
		DriverArgs: "file:" + databaseName + "?mode=memory&cache=shared",
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		defer ds.Stop()
		log.Fatalf("database conneciton failed %v\n", err)
	}
	Expect(persistence.Migrate(ds.GormDB(context.Background()), models...)).To(Succeed())

	persistence.ActiveDataSourceManager = ds
	return &TestDatabase{TestDatabaseName: databaseName, DS: ds}
}

// StopSqliteTestDatabase closes the connection, which discards the in-memory database.
func StopSqliteTestDatabase(testDatabase *TestDatabase) {
	if testDatabase != nil && testDatabase.DS != nil {
		testDatabase.DS.Stop()
		if persistence.ActiveDataSourceManager == testDatabase.DS {
			persistence.ActiveDataSourceManager = nil
		}
	}
}
