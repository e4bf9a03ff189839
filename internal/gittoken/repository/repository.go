// Package repository persists git tokens in PostgreSQL or MySQL. The encrypted value is
// stored as two text columns: iv and token_value (ciphertext.authTag).
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	apperrors "github.com/devdox-ai/devdox-api/internal/errors"
	gitTokenDomain "github.com/devdox-ai/devdox-api/internal/gittoken/domain"
	"github.com/devdox-ai/devdox-api/internal/gittoken/usecase"
)

const (
	pqUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	selectGitTokenFields = `id, user_id, label, provider_type, provider_url, token_value, iv, created_at, updated_at`
)

var (
	_ usecase.GitTokenRepository = (*PostgreSQLGitTokenRepository)(nil)
	_ usecase.GitTokenRepository = (*MySQLGitTokenRepository)(nil)
)

// ErrDuplicateLabel indicates the user already has a token with the same label.
var ErrDuplicateLabel = apperrors.Wrap(apperrors.ErrConflict, "a git token with this label already exists")

type rowScanner interface {
	Scan(dest ...any) error
}

// scanGitToken reads one row selected with selectGitTokenFields. id receives the raw id
// column so each driver can decode its own representation.
func scanGitToken(row rowScanner, id any) (*gitTokenDomain.GitToken, error) {
	var token gitTokenDomain.GitToken
	err := row.Scan(
		id,
		&token.UserID,
		&token.Label,
		&token.ProviderType,
		&token.ProviderURL,
		&token.Envelope.Ciphertext,
		&token.Envelope.IV,
		&token.CreatedAt,
		&token.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// translateError maps driver errors to domain errors; anything else is wrapped with message.
func translateError(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return gitTokenDomain.ErrGitTokenNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return ErrDuplicateLabel
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrDuplicateLabel
	}

	return apperrors.Wrap(err, message)
}

// requireAffected reports ErrGitTokenNotFound when a scoped write matched no row.
func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return gitTokenDomain.ErrGitTokenNotFound
	}
	if affected > 1 {
		return fmt.Errorf("%s: %d rows affected", message, affected)
	}
	return nil
}
