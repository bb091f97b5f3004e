package config

import "fmt"

const (
	SQLiteExtensionName   = "sqlite"
	PostgresExtensionName = "postgres"
	// SQLiteInMemory is the database name of a private in-memory sqlite database
	SQLiteInMemory = ":memory:"
)

type (
	// SQL is the configuration for connecting to a SQL backed datastore
	SQL struct {
		// User is the username to be used for connecting to database
		User string `yaml:"user"`
		// Password is the password corresponding to the username
		Password string `yaml:"password" json:"-"`
		// DatabaseName is the name of SQL database to connect to.
		// For sqlite it is the file path, or ":memory:".
		DatabaseName string `yaml:"databaseName"`
		// ConnectAddr is the remote addr of the database, unused by sqlite
		ConnectAddr string `yaml:"connectAddr"`
		// DBExtensionName is the name of the extension
		DBExtensionName string `yaml:"dbExtensionName"`
	}
)

func (s *SQL) validate() error {
	switch s.DBExtensionName {
	case SQLiteExtensionName:
		if s.DatabaseName == "" {
			s.DatabaseName = SQLiteInMemory
		}
		return nil
	case "":
		return fmt.Errorf("database.index.dbExtensionName is required")
	default:
		if anyAbsent(s.DatabaseName, s.ConnectAddr, s.User) {
			return fmt.Errorf("some required configs are missing: sql.DatabaseName, sql.ConnectAddr, sql.User")
		}
		return nil
	}
}
