// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log"
	"os"

	"github.com/camunda/camunda-sub002/cmd/server/bootstrap"
	"github.com/urfave/cli/v2"

	_ "github.com/camunda/camunda-sub002/extensions/postgres" // import postgres extension
)

func main() {
	app := &cli.App{
		Name:  "orchestration emulator",
		Usage: "start a single node emulator of the orchestration cluster REST API",
		Action: func(c *cli.Context) error {
			bootstrap.StartEmulatorCli(c)
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  bootstrap.FlagConfig,
				Value: "./config/development.yaml",
				Usage: "the config to start the emulator",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
