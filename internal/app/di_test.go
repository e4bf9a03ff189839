package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devdox-ai/devdox-api/internal/config"
	cryptoDomain "github.com/devdox-ai/devdox-api/internal/crypto/domain"
	gitTokenRepository "github.com/devdox-ai/devdox-api/internal/gittoken/repository"
	"github.com/devdox-ai/devdox-api/internal/metrics"
)

func validConfig() *config.Config {
	return &config.Config{
		AppEnv:               config.EnvTest,
		APIVersion:           "1.0.0",
		LogLevel:             "error",
		DBDriver:             "postgres",
		ServerHost:           "127.0.0.1",
		ServerPort:           0,
		AuthJWTSecret:        "jwt-secret",
		EncryptionMasterKey:  strings.Repeat("m", 32),
		CipherMaxConcurrency: 2,
		MaxRequestBodyBytes:  1024,
		MetricsNamespace:     "devdox_di_test",
		MetricsPort:          0,
	}
}

// withMockDB injects a sqlmock connection so that components depending on DB can be built
// without a running database.
func withMockDB(t *testing.T, c *Container) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	c.dbInit.Do(func() { c.db = db })
	t.Cleanup(func() { _ = db.Close() })
	return mock
}

func TestNewContainer(t *testing.T) {
	cfg := validConfig()
	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainer_Logger(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogFormat = format
			container := NewContainer(cfg)

			logger := container.Logger()
			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
			assert.False(t, logger.Enabled(context.Background(), -4), "debug is disabled at error level")
		})
	}
}

func TestContainer_DBInitializationError(t *testing.T) {
	cfg := validConfig()
	cfg.DBDriver = "invalid_driver"
	container := NewContainer(cfg)

	db, err := container.DB()
	assert.Nil(t, db)
	require.Error(t, err)

	_, err2 := container.DB()
	assert.Equal(t, err, err2, "the first error is remembered")

	_, err = container.GitTokenRepository()
	assert.ErrorContains(t, err, "failed to get database for git token repository")

	_, err = container.HTTPServer()
	assert.Error(t, err)
}

func TestContainer_GitTokenRepository(t *testing.T) {
	tests := []struct {
		driver string
		want   any
	}{
		{driver: "postgres", want: &gitTokenRepository.PostgreSQLGitTokenRepository{}},
		{driver: "mysql", want: &gitTokenRepository.MySQLGitTokenRepository{}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := validConfig()
			cfg.DBDriver = tt.driver
			container := NewContainer(cfg)
			withMockDB(t, container)

			repo, err := container.GitTokenRepository()
			require.NoError(t, err)
			assert.IsType(t, tt.want, repo)
		})
	}
}

func TestContainer_GitTokenUseCase(t *testing.T) {
	t.Run("rejects a short master key at startup", func(t *testing.T) {
		cfg := validConfig()
		cfg.EncryptionMasterKey = "too-short"
		container := NewContainer(cfg)
		withMockDB(t, container)

		_, err := container.GitTokenUseCase()
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyDerivation)
		assert.ErrorContains(t, err, "ENCRYPTION_MASTER_KEY")
	})

	t.Run("rejects zero concurrency", func(t *testing.T) {
		cfg := validConfig()
		cfg.CipherMaxConcurrency = 0
		container := NewContainer(cfg)
		withMockDB(t, container)

		_, err := container.GitTokenUseCase()
		assert.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		container := NewContainer(validConfig())
		withMockDB(t, container)

		useCase, err := container.GitTokenUseCase()
		require.NoError(t, err)
		assert.NotNil(t, useCase)
	})
}

func TestContainer_TokenVerifier(t *testing.T) {
	cfg := validConfig()
	cfg.AuthJWTSecret = ""
	_, err := NewContainer(cfg).TokenVerifier()
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")

	verifier, err := NewContainer(validConfig()).TokenVerifier()
	require.NoError(t, err)
	assert.NotNil(t, verifier)
}

func TestContainer_MetricsDisabled(t *testing.T) {
	container := NewContainer(validConfig())

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	businessMetrics, err := container.BusinessMetrics()
	require.NoError(t, err)
	assert.IsType(t, &metrics.NoOpBusinessMetrics{}, businessMetrics)

	server, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, server)
}

func TestContainer_HTTPServerAndShutdown(t *testing.T) {
	cfg := validConfig()
	cfg.MetricsEnabled = true
	container := NewContainer(cfg)
	dbMock := withMockDB(t, container)

	server, err := container.HTTPServer()
	require.NoError(t, err)
	require.NotNil(t, server)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.NotNil(t, metricsServer)

	assert.NotNil(t, container.VersionHandler())

	dbMock.ExpectClose()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, container.Shutdown(ctx))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestContainer_ShutdownWithoutInitialization(t *testing.T) {
	container := NewContainer(validConfig())
	assert.NoError(t, container.Shutdown(context.Background()))
}

