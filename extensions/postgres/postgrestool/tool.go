package postgrestool

import (
	"github.com/camunda/camunda-sub002/extensions"
	"github.com/camunda/camunda-sub002/extensions/postgres"
	"github.com/urfave/cli/v2"
)

const DefaultEndpoint = "127.0.0.1"
const DefaultPort = 5432
const DefaultUserName = "camunda"
const DefaultPassword = "camunda"
const DefaultDatabaseName = "camunda_index"

// BuildCLIOptions builds the index db tool, every command targets the database named by the global flags
func BuildCLIOptions() *cli.App {
	app := cli.NewApp()
	app.Name = "indexdb"
	app.Usage = "manages the postgres index database read by the emulator"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    extensions.CLIFlagEndpoint,
			Aliases: []string{"e"},
			Value:   DefaultEndpoint,
			Usage:   "postgres host",
		},
		&cli.IntFlag{
			Name:    extensions.CLIFlagPort,
			Aliases: []string{"p"},
			Value:   DefaultPort,
			Usage:   "postgres port",
		},
		&cli.StringFlag{
			Name:    extensions.CLIFlagUser,
			Aliases: []string{"u"},
			Value:   DefaultUserName,
			Usage:   "postgres user",
		},
		&cli.StringFlag{
			Name:    extensions.CLIFlagPassword,
			Aliases: []string{"pw"},
			Value:   DefaultPassword,
			EnvVars: []string{"INDEXDB_PASSWORD"},
			Usage:   "postgres password",
		},
		&cli.StringFlag{
			Name:    extensions.CLIFlagDatabase,
			Aliases: []string{"db"},
			Value:   DefaultDatabaseName,
			Usage:   "name of the index database",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:    "create-database",
			Aliases: []string{"create"},
			Usage:   "creates the index database",
			Action: func(c *cli.Context) error {
				return extensions.CreateDatabaseByCli(c, postgres.ExtensionName)
			},
		},
		{
			Name:    "drop-database",
			Aliases: []string{"drop"},
			Usage:   "drops the index database if it exists",
			Action: func(c *cli.Context) error {
				return extensions.DropDatabaseByCli(c, postgres.ExtensionName)
			},
		},
		{
			Name:    "install-schema",
			Aliases: []string{"install"},
			Usage:   "installs the index schema into an existing database",
			Flags:   []cli.Flag{schemaFileFlag()},
			Action: func(c *cli.Context) error {
				return extensions.SetupSchemaByCli(c, postgres.ExtensionName, postgres.SchemaDDL)
			},
		},
		{
			Name:  "reset-database",
			Usage: "drops the index database, creates it again and installs the schema",
			Flags: []cli.Flag{schemaFileFlag()},
			Action: func(c *cli.Context) error {
				return extensions.ResetDatabaseByCli(c, postgres.ExtensionName, postgres.SchemaDDL)
			},
		},
	}

	return app
}

func schemaFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    extensions.CLIFlagFile,
		Aliases: []string{"f"},
		Usage:   "schema file to install instead of the schema built into the tool",
	}
}
