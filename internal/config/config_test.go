package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "development", cfg.AppEnv)
				assert.Equal(t, "1.0.0", cfg.APIVersion)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "json", cfg.LogFormat)
				assert.Empty(t, cfg.EncryptionMasterKey)
				assert.Equal(t, 4, cfg.CipherMaxConcurrency)
				assert.Equal(t, int64(10240), cfg.MaxRequestBodyBytes)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 100, cfg.RateLimitRequests)
				assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
				assert.Equal(t, "devdox", cfg.MetricsNamespace)
				assert.Equal(t, 8081, cfg.MetricsPort)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_MAX_IDLE_CONNECTIONS": "10",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load encryption and auth configuration",
			envVars: map[string]string{
				"ENCRYPTION_MASTER_KEY":  "0123456789abcdef0123456789abcdef",
				"CIPHER_MAX_CONCURRENCY": "2",
				"AUTH_JWT_SECRET":        "jwt-secret",
				"AUTH_JWT_ISSUER":        "https://issuer.example.com",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.EncryptionMasterKey)
				assert.Equal(t, 2, cfg.CipherMaxConcurrency)
				assert.Equal(t, "jwt-secret", cfg.AuthJWTSecret)
				assert.Equal(t, "https://issuer.example.com", cfg.AuthJWTIssuer)
			},
		},
		{
			name: "load rate limit configuration",
			envVars: map[string]string{
				"RATE_LIMIT_ENABLED":        "false",
				"RATE_LIMIT_REQUESTS":       "10",
				"RATE_LIMIT_WINDOW_MINUTES": "1",
				"RATE_LIMIT_BURST":          "5",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitEnabled)
				assert.Equal(t, 10, cfg.RateLimitRequests)
				assert.Equal(t, time.Minute, cfg.RateLimitWindow)
				assert.Equal(t, 5, cfg.RateLimitBurst)
			},
		},
		{
			name: "load test environment",
			envVars: map[string]string{
				"APP_ENV": "test",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsTest())
				assert.False(t, cfg.IsProduction())
				assert.Equal(t, "test", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			cfg := Load()

			tt.validate(t, cfg)
		})
	}
}

func TestConfig_GetGinMode(t *testing.T) {
	tests := []struct {
		appEnv   string
		logLevel string
		expected string
	}{
		{appEnv: "development", logLevel: "debug", expected: "debug"},
		{appEnv: "development", logLevel: "info", expected: "release"},
		{appEnv: "production", logLevel: "error", expected: "release"},
		{appEnv: "test", logLevel: "debug", expected: "test"},
	}

	for _, tt := range tests {
		t.Run(tt.appEnv+"/"+tt.logLevel, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.appEnv, LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}
