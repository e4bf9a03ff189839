package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/devdox-ai/devdox-api/internal/database"
	apperrors "github.com/devdox-ai/devdox-api/internal/errors"
	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
)

// MySQLGitTokenRepository implements GitToken persistence for MySQL. Ids are stored as
// BINARY(16); the DSN must set parseTime=true.
type MySQLGitTokenRepository struct {
	db *sql.DB
}

// NewMySQLGitTokenRepository creates a new MySQL GitToken repository instance.
func NewMySQLGitTokenRepository(db *sql.DB) *MySQLGitTokenRepository {
	return &MySQLGitTokenRepository{db: db}
}

// Create inserts a new git token.
func (m *MySQLGitTokenRepository) Create(ctx context.Context, token *gitTokenDomain.GitToken) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal git token id")
	}

	query := `INSERT INTO git_tokens
			  (id, user_id, label, provider_type, provider_url, token_value, iv, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLGitTokenRepository) Get(
	ctx context.Context,
	id uuid.UUID,
	userID string,
) (*gitTokenDomain.GitToken, error) {
	return m.get(ctx, id, userID, "")
}

// GetForUpdate retrieves a git token owned by userID and locks its row.
func (m *MySQLGitTokenRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
	userID string,
) (*gitTokenDomain.GitToken, error) {
	return m.get(ctx, id, userID, " FOR UPDATE")
}

func (m *MySQLGitTokenRepository) get(
	ctx context.Context,
	id uuid.UUID,
	userID, lock string,
) (*gitTokenDomain.GitToken, error) {
	querier := database.GetTx(ctx, m.db)

	binaryID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal git token id")
	}

	query := `SELECT ` + selectGitTokenFields + `
			  FROM git_tokens
			  WHERE id = ? AND user_id = ?` + lock

	var rawID []byte
	token, err := scanGitToken(querier.QueryRowContext(ctx, query, binaryID, userID), &rawID)
	if err != nil {
		return nil, translateError(err, "failed to get git token")
	}
	if err := token.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal git token id")
	}

	return token, nil
}

// List retrieves the user's git tokens ordered newest first.
func (m *MySQLGitTokenRepository) List(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*gitTokenDomain.GitToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + selectGitTokenFields + `
			  FROM git_tokens
			  WHERE user_id = ?
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list git tokens")
	}
	defer func() { _ = rows.Close() }()

	tokens := make([]*gitTokenDomain.GitToken, 0)
	for rows.Next() {
		var rawID []byte
		token, err := scanGitToken(rows, &rawID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan git token")
		}
		if err := token.ID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal git token id")
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate git tokens")
	}

	return tokens, nil
}

// UpdateValue replaces the encrypted value of an existing token.
func (m *MySQLGitTokenRepository) UpdateValue(ctx context.Context, token *gitTokenDomain.GitToken) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal git token id")
	}

	query := `UPDATE git_tokens
			  SET token_value = ?, iv = ?, updated_at = ?
			  WHERE id = ? AND user_id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		token.Envelope.Ciphertext,
		token.Envelope.IV,
		token.UpdatedAt,
		id,
		token.UserID,
	)
	if err != nil {
		return translateError(err, "failed to update git token")
	}
	return requireAffected(result, "failed to update git token")
}

// Delete removes a git token owned by userID.
func (m *MySQLGitTokenRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	querier := database.GetTx(ctx, m.db)

	binaryID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal git token id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM git_tokens WHERE id = ? AND user_id = ?`, binaryID, userID)
	if err != nil {
		return translateError(err, "failed to delete git token")
	}
	return requireAffected(result, "failed to delete git token")
}
