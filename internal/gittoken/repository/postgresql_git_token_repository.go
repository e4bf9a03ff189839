package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/devdox-ai/devdox-api/internal/database"
	apperrors "github.com/devdox-ai/devdox-api/internal/errors"
	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
)

// PostgreSQLGitTokenRepository implements GitToken persistence for PostgreSQL.
type PostgreSQLGitTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLGitTokenRepository creates a new PostgreSQL GitToken repository instance.
func NewPostgreSQLGitTokenRepository(db *sql.DB) *PostgreSQLGitTokenRepository {
	return &PostgreSQLGitTokenRepository{db: db}
}

// Create inserts a new git token.
func (p *PostgreSQLGitTokenRepository) Create(ctx context.Context, token *gitTokenDomain.GitToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO git_tokens
			  (id, user_id, label, provider_type, provider_url, token_value, iv, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
		token.Label,
		token.ProviderType,
		token.ProviderURL,
		token.Envelope.Ciphertext,
		token.Envelope.IV,
		token.CreatedAt,
		token.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "failed to create git token")
	}
	return nil
}

// Get retrieves a git token owned by userID.
func (p *PostgreSQLGitTokenRepository) Get(
	ctx context.Context,
	id uuid.UUID,
	userID string,
) (*gitTokenDomain.GitToken, error) {
	return p.get(ctx, id, userID, "")
}

// GetForUpdate retrieves a git token owned by userID and locks its row.
func (p *PostgreSQLGitTokenRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
	userID string,
) (*gitTokenDomain.GitToken, error) {
	return p.get(ctx, id, userID, " FOR UPDATE")
}

func (p *PostgreSQLGitTokenRepository) get(
	ctx context.Context,
	id uuid.UUID,
	userID, lock string,
) (*gitTokenDomain.GitToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + selectGitTokenFields + `
			  FROM git_tokens
			  WHERE id = $1 AND user_id = $2` + lock

	var tokenID uuid.UUID
	token, err := scanGitToken(querier.QueryRowContext(ctx, query, id, userID), &tokenID)
	if err != nil {
		return nil, translateError(err, "failed to get git token")
	}
	token.ID = tokenID

	return token, nil
}

// List retrieves the user's git tokens ordered newest first.
func (p *PostgreSQLGitTokenRepository) List(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*gitTokenDomain.GitToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + selectGitTokenFields + `
			  FROM git_tokens
			  WHERE user_id = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list git tokens")
	}
	defer func() { _ = rows.Close() }()

	tokens := make([]*gitTokenDomain.GitToken, 0)
	for rows.Next() {
		var tokenID uuid.UUID
		token, err := scanGitToken(rows, &tokenID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan git token")
		}
		token.ID = tokenID
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate git tokens")
	}

	return tokens, nil
}

// UpdateValue replaces the encrypted value of an existing token.
func (p *PostgreSQLGitTokenRepository) UpdateValue(ctx context.Context, token *gitTokenDomain.GitToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE git_tokens
			  SET token_value = $1, iv = $2, updated_at = $3
			  WHERE id = $4 AND user_id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		token.Envelope.Ciphertext,
		token.Envelope.IV,
		token.UpdatedAt,
		token.ID,
		token.UserID,
	)
	if err != nil {
		return translateError(err, "failed to update git token")
	}
	return requireAffected(result, "failed to update git token")
}

// Delete removes a git token owned by userID.
func (p *PostgreSQLGitTokenRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM git_tokens WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translateError(err, "failed to delete git token")
	}
	return requireAffected(result, "failed to delete git token")
}
