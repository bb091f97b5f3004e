// Copyright (c) 2017 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package extensions

import (
	"context"
	"net"
	"os"
	"strconv"

	"github.com/camunda/camunda-sub002/config"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// LoadSchema returns the DDL in filePath, or the embedded DDL of the extension when no file is given
func LoadSchema(filePath, embedded string) (string, error) {
	if filePath == "" {
		if embedded == "" {
			return "", errors.New("no schema file given and the extension embeds no schema")
		}
		return embedded, nil
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "cannot read schema file %v", filePath)
	}
	return string(content), nil
}

// SetupSchemaByCli installs the index schema into an existing database
func SetupSchemaByCli(c *cli.Context, extensionName, embedded string) error {
	cfg, err := parseConnectConfig(c, extensionName)
	if err != nil {
		return err
	}
	ddl, err := LoadSchema(c.String(CLIFlagFile), embedded)
	if err != nil {
		return err
	}
	return SetupSchema(c.Context, cfg, ddl)
}

func SetupSchema(ctx context.Context, cfg *config.SQL, ddl string) error {
	return withAdminSession(cfg, func(session SQLAdminDBSession) error {
		return errors.Wrap(session.ExecuteSchemaDDL(ctx, ddl), "cannot install index schema")
	})
}

// CreateDatabaseByCli creates the index database
func CreateDatabaseByCli(c *cli.Context, extensionName string) error {
	cfg, err := parseConnectConfig(c, extensionName)
	if err != nil {
		return err
	}
	return CreateDatabase(c.Context, *cfg, cfg.DatabaseName)
}

// DropDatabaseByCli drops the index database
func DropDatabaseByCli(c *cli.Context, extensionName string) error {
	cfg, err := parseConnectConfig(c, extensionName)
	if err != nil {
		return err
	}
	return DropDatabase(c.Context, *cfg, cfg.DatabaseName)
}

// ResetDatabaseByCli drops the index database if present, then creates it again with the schema installed
func ResetDatabaseByCli(c *cli.Context, extensionName, embedded string) error {
	cfg, err := parseConnectConfig(c, extensionName)
	if err != nil {
		return err
	}
	ddl, err := LoadSchema(c.String(CLIFlagFile), embedded)
	if err != nil {
		return err
	}
	if err := DropDatabase(c.Context, *cfg, cfg.DatabaseName); err != nil {
		return err
	}
	if err := CreateDatabase(c.Context, *cfg, cfg.DatabaseName); err != nil {
		return err
	}
	return SetupSchema(c.Context, cfg, ddl)
}

// CreateDatabase connects without a database name, the extension picks its maintenance database
func CreateDatabase(ctx context.Context, cfg config.SQL, name string) error {
	cfg.DatabaseName = ""
	return withAdminSession(&cfg, func(session SQLAdminDBSession) error {
		return errors.Wrapf(session.CreateDatabase(ctx, name), "cannot create database %v", name)
	})
}

// DropDatabase is a no-op for a missing database
func DropDatabase(ctx context.Context, cfg config.SQL, name string) error {
	cfg.DatabaseName = ""
	return withAdminSession(&cfg, func(session SQLAdminDBSession) error {
		return errors.Wrapf(session.DropDatabase(ctx, name), "cannot drop database %v", name)
	})
}

func withAdminSession(cfg *config.SQL, fn func(session SQLAdminDBSession) error) error {
	session, err := NewSQLAdminSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session)
}

func parseConnectConfig(c *cli.Context, extensionName string) (*config.SQL, error) {
	cfg := &config.SQL{
		ConnectAddr:     net.JoinHostPort(c.String(CLIFlagEndpoint), strconv.Itoa(c.Int(CLIFlagPort))),
		User:            c.String(CLIFlagUser),
		Password:        c.String(CLIFlagPassword),
		DatabaseName:    c.String(CLIFlagDatabase),
		DBExtensionName: extensionName,
	}
	if err := ValidateConnectConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConnectConfig checks the connection flags of the index db tool
func ValidateConnectConfig(cfg *config.SQL) error {
	host, _, err := net.SplitHostPort(cfg.ConnectAddr)
	if err != nil {
		return errors.Wrapf(err, "invalid address %v", cfg.ConnectAddr)
	}
	if host == "" {
		return errors.Errorf("missing (-%v) argument", CLIFlagEndpoint)
	}
	if cfg.DatabaseName == "" {
		return errors.Errorf("missing (-%v) argument", CLIFlagDatabase)
	}
	return nil
}
