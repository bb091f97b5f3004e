package extensions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/camunda/camunda-sub002/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchema(t *testing.T) {
	ddl, err := LoadSchema("", "CREATE TABLE embedded (id INT);")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE embedded (id INT);", ddl)

	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE from_file (id INT);"), 0o600))
	ddl, err = LoadSchema(path, "CREATE TABLE embedded (id INT);")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE from_file (id INT);", ddl)

	_, err = LoadSchema(filepath.Join(t.TempDir(), "missing.sql"), "")
	assert.ErrorContains(t, err, "cannot read schema file")

	_, err = LoadSchema("", "")
	assert.Error(t, err)
}

func TestValidateConnectConfig(t *testing.T) {
	assert.NoError(t, ValidateConnectConfig(&config.SQL{ConnectAddr: "127.0.0.1:5432", DatabaseName: "index"}))
	assert.ErrorContains(t, ValidateConnectConfig(&config.SQL{ConnectAddr: "127.0.0.1", DatabaseName: "index"}),
		"invalid address")
	assert.ErrorContains(t, ValidateConnectConfig(&config.SQL{ConnectAddr: ":5432", DatabaseName: "index"}),
		"-endpoint")
	assert.ErrorContains(t, ValidateConnectConfig(&config.SQL{ConnectAddr: "127.0.0.1:5432"}), "-database")
}
