package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  environment: production
  port: "8080"
  jwt_signing_key: s3cret
  jwt_expiry: 2h
  allowed_cors_domains:
    - https://festflow.example
gin:
  mode: release
database:
  driver: sqlite
  sqlite_path: /tmp/festflow.db
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", conf.API.Environment)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, "s3cret", conf.API.JWTSigningKey)
	assert.Equal(t, 2*time.Hour, conf.API.JWTExpiry)
	assert.Equal(t, []string{"https://festflow.example"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "release", conf.Gin.Mode)
	assert.Equal(t, DriverSQLite, conf.Database.Driver)
	assert.Equal(t, "/tmp/festflow.db", conf.Database.SQLitePath)

	// defaults
	assert.Equal(t, "festflow", conf.API.JWTIssuer)
	assert.Equal(t, "localhost", conf.Postgres.Host)
	assert.Equal(t, 5, conf.RateLimit.LoginPerMinute)
	assert.Equal(t, "info", conf.Log.Level)
}

func TestLoad_EnvOverridesSigningKey(t *testing.T) {
	path := writeConfig(t, `
api:
  jwt_signing_key: from-file
`)
	t.Setenv("API_JWT_SIGNING_KEY", "from-env")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", conf.API.JWTSigningKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "missing signing key",
			body:    "api:\n  port: \"5000\"\n",
			wantErr: ErrMissingSigningKey,
		},
		{
			name:    "unknown driver",
			body:    "api:\n  jwt_signing_key: k\ndatabase:\n  driver: mongo\n",
			wantErr: ErrUnknownDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestPostgresConfig_DSN(t *testing.T) {
	c := &PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DB: "festflow", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=festflow sslmode=disable", c.DSN())
}
