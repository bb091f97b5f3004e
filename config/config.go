// Copyright (c) XDBLab
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		// Log is the logging config
		Log Logger `yaml:"log"`

		// Database is the secondary storage that all reads and searches are served from
		Database DatabaseConfig `yaml:"database"`

		// ApiService is the REST gateway config
		ApiService ApiServiceConfig `yaml:"apiService"`

		// Exporter moves records from the primary state into the index
		Exporter ExporterConfig `yaml:"exporter"`

		// BatchOperation is the config of the batch operation executor
		BatchOperation BatchOperationConfig `yaml:"batchOperation"`

		// Security is authentication, authorization and multi-tenancy
		Security SecurityConfig `yaml:"security"`

		// DocumentStore is the config of the in-memory document store
		DocumentStore DocumentStoreConfig `yaml:"documentStore"`
	}

	DatabaseConfig struct {
		// Index is the SQL database the exported records are written to.
		// When absent, an in-memory sqlite database is used.
		Index *SQL `yaml:"index"`
	}

	ApiServiceConfig struct {
		// HttpServer is the config for starting http.Server
		HttpServer HttpServerConfig `yaml:"httpServer"`
	}

	// HttpServerConfig is the config that will be mapped into http.Server
	HttpServerConfig struct {
		// Address optionally specifies the TCP address for the server to listen on,
		// in the form "host:port". Port 0 picks a random free port.
		// For more details, see https://blog.cloudflare.com/the-complete-guide-to-golang-net-http-timeouts/
		Address string `yaml:"address"`
		// ReadTimeout is the maximum duration for reading the entire
		// request, including the body.
		ReadTimeout time.Duration `yaml:"readTimeout"`
		// WriteTimeout is the maximum duration before timing out
		// writes of the response.
		WriteTimeout time.Duration `yaml:"writeTimeout"`
		// TLSConfig optionally provides a TLS configuration for use
		// by ServeTLS and ListenAndServeTLS
		TLSConfig *tls.Config `yaml:"tlsConfig"`
		// the rest are less frequently used
		ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
		IdleTimeout       time.Duration `yaml:"idleTimeout"`
		MaxHeaderBytes    int           `yaml:"maxHeaderBytes"`
	}

	ExporterConfig struct {
		// ExportDelay is how long a record stays invisible to searches after the command that produced it.
		// Default value is 100 milliseconds.
		ExportDelay time.Duration `yaml:"exportDelay"`
		// BufferSize is the capacity of the export queue. Commands block when it is full.
		// Default value is 10000.
		BufferSize int `yaml:"bufferSize"`
		// RetryInitialInterval is the first backoff after a failed index write.
		// Default value is 100 milliseconds.
		RetryInitialInterval time.Duration `yaml:"retryInitialInterval"`
		// RetryMaxInterval caps the backoff between index write attempts.
		// Default value is 5 seconds.
		RetryMaxInterval time.Duration `yaml:"retryMaxInterval"`
	}

	BatchOperationConfig struct {
		// ItemInterval is the time spent on every item of a batch operation.
		// Default value is 20 milliseconds.
		ItemInterval time.Duration `yaml:"itemInterval"`
		// ScanInterval is how often the executor looks for batch operations to advance.
		// Default value is 50 milliseconds.
		ScanInterval time.Duration `yaml:"scanInterval"`
	}

	SecurityConfig struct {
		Authentication AuthenticationConfig `yaml:"authentication"`
		Authorizations AuthorizationsConfig `yaml:"authorizations"`
		InitialAdmin   InitialAdminConfig   `yaml:"initialAdmin"`
		MultiTenancy   MultiTenancyConfig   `yaml:"multiTenancy"`
	}

	AuthenticationConfig struct {
		// Method is either "none" or "basic". Default is "basic".
		Method AuthenticationMethod `yaml:"method"`
	}

	AuthorizationsConfig struct {
		// Enabled requires the admin role for identity management and batch operations
		Enabled bool `yaml:"enabled"`
	}

	InitialAdminConfig struct {
		// Username of the user created at startup with the admin role. Default is "demo".
		Username string `yaml:"username"`
		// Password of the initial admin. Default is "demo".
		Password string `yaml:"password" json:"-"`
	}

	MultiTenancyConfig struct {
		// ChecksEnabled requires users to be assigned to the tenant of the resources they access
		ChecksEnabled bool `yaml:"checksEnabled"`
	}

	DocumentStoreConfig struct {
		// DefaultTimeToLive applies to documents uploaded without an expiry.
		// Default value is 1 hour.
		DefaultTimeToLive time.Duration `yaml:"defaultTimeToLive"`
		// CleanupInterval is how often expired documents are evicted.
		// Default value is 1 minute.
		CleanupInterval time.Duration `yaml:"cleanupInterval"`
	}

	AuthenticationMethod string
)

const (
	AuthenticationMethodNone  AuthenticationMethod = "none"
	AuthenticationMethodBasic AuthenticationMethod = "basic"
)

const (
	DefaultAdminUsername = "demo"
	DefaultAdminPassword = "demo"
)

// NewConfig returns a new decoded Config struct
func NewConfig(configPath string) (*Config, error) {
	log.Printf("Loading configFile=%v\n", configPath)

	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)

	if err := d.Decode(&config); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) ValidateAndSetDefaults() error {
	if c.Database.Index == nil {
		c.Database.Index = &SQL{
			DBExtensionName: SQLiteExtensionName,
			DatabaseName:    SQLiteInMemory,
		}
	}
	if err := c.Database.Index.validate(); err != nil {
		return err
	}
	if c.ApiService.HttpServer.Address == "" {
		c.ApiService.HttpServer.Address = "0.0.0.0:8080"
	}

	exporter := &c.Exporter
	if exporter.ExportDelay < 0 {
		return fmt.Errorf("exporter.exportDelay cannot be negative")
	}
	if exporter.ExportDelay == 0 {
		exporter.ExportDelay = 100 * time.Millisecond
	}
	if exporter.BufferSize == 0 {
		exporter.BufferSize = 10000
	}
	if exporter.RetryInitialInterval == 0 {
		exporter.RetryInitialInterval = 100 * time.Millisecond
	}
	if exporter.RetryMaxInterval == 0 {
		exporter.RetryMaxInterval = 5 * time.Second
	}

	batch := &c.BatchOperation
	if batch.ItemInterval == 0 {
		batch.ItemInterval = 20 * time.Millisecond
	}
	if batch.ScanInterval == 0 {
		batch.ScanInterval = 50 * time.Millisecond
	}

	security := &c.Security
	switch security.Authentication.Method {
	case "":
		security.Authentication.Method = AuthenticationMethodBasic
	case AuthenticationMethodNone, AuthenticationMethodBasic:
	default:
		return fmt.Errorf("unsupported authentication method %q, only none or basic", security.Authentication.Method)
	}
	if security.Authorizations.Enabled && security.Authentication.Method == AuthenticationMethodNone {
		return fmt.Errorf("authorizations cannot be enabled without authentication")
	}
	if security.InitialAdmin.Username == "" {
		security.InitialAdmin.Username = DefaultAdminUsername
	}
	if security.InitialAdmin.Password == "" {
		security.InitialAdmin.Password = DefaultAdminPassword
	}

	documents := &c.DocumentStore
	if documents.DefaultTimeToLive == 0 {
		documents.DefaultTimeToLive = time.Hour
	}
	if documents.CleanupInterval == 0 {
		documents.CleanupInterval = time.Minute
	}
	return nil
}

func anyAbsent(strs ...string) bool {
	for _, s := range strs {
		if s == "" {
			return true
		}
	}
	return false
}

// String converts the config object into a string
func (c *Config) String() string {
	out, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		panic(err)
	}
	return string(out)
}
