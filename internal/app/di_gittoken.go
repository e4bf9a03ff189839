package app

import (
	"fmt"

	cryptoService "github.com/devdox-ai/devdox-api/internal/crypto/service"
	"github.com/devdox-ai/devdox-api/internal/database"
	gitTokenHTTP "github.com/devdox-ai/devdox-api/internal/gittoken/http"
	gitTokenRepository "github.com/devdox-ai/devdox-api/internal/gittoken/repository"
	gitTokenUseCase "github.com/devdox-ai/devdox-api/internal/gittoken/usecase"
)

// TokenCipher returns the token cipher.
func (c *Container) TokenCipher() cryptoService.TokenCipher {
	c.tokenCipherInit.Do(func() {
		c.tokenCipher = cryptoService.NewTokenCipher()
	})
	return c.tokenCipher
}

// GitTokenRepository returns the git token repository for the configured driver.
func (c *Container) GitTokenRepository() (gitTokenUseCase.GitTokenRepository, error) {
	c.gitTokenRepositoryInit.Do(func() {
		var err error
		c.gitTokenRepository, err = c.initGitTokenRepository()
		c.setInitError("gitTokenRepository", err)
	})
	return c.gitTokenRepository, c.initError("gitTokenRepository")
}

// GitTokenUseCase returns the git token use case wrapped with metrics.
func (c *Container) GitTokenUseCase() (gitTokenUseCase.GitTokenUseCase, error) {
	c.gitTokenUseCaseInit.Do(func() {
		var err error
		c.gitTokenUseCase, err = c.initGitTokenUseCase()
		c.setInitError("gitTokenUseCase", err)
	})
	return c.gitTokenUseCase, c.initError("gitTokenUseCase")
}

// GitTokenHandler returns the git token HTTP handler.
func (c *Container) GitTokenHandler() (*gitTokenHTTP.GitTokenHandler, error) {
	c.gitTokenHandlerInit.Do(func() {
		var err error
		c.gitTokenHandler, err = c.initGitTokenHandler()
		c.setInitError("gitTokenHandler", err)
	})
	return c.gitTokenHandler, c.initError("gitTokenHandler")
}

func (c *Container) initGitTokenRepository() (gitTokenUseCase.GitTokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for git token repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return gitTokenRepository.NewMySQLGitTokenRepository(db), nil
	case database.DriverPostgres:
		return gitTokenRepository.NewPostgreSQLGitTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGitTokenUseCase fails when ENCRYPTION_MASTER_KEY does not satisfy the key policy, so
// the server refuses to start instead of failing on the first request.
func (c *Container) initGitTokenUseCase() (gitTokenUseCase.GitTokenUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for git token use case: %w", err)
	}

	repo, err := c.GitTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get git token repository for git token use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for git token use case: %w", err)
	}

	useCase, err := gitTokenUseCase.NewGitTokenUseCase(
		txManager,
		repo,
		c.TokenCipher(),
		c.config.EncryptionMasterKey,
		c.config.CipherMaxConcurrency,
		businessMetrics,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid ENCRYPTION_MASTER_KEY or cipher settings: %w", err)
	}

	return gitTokenUseCase.NewGitTokenUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initGitTokenHandler() (*gitTokenHTTP.GitTokenHandler, error) {
	useCase, err := c.GitTokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get git token use case for git token handler: %w", err)
	}
	return gitTokenHTTP.NewGitTokenHandler(useCase, c.Logger()), nil
}
