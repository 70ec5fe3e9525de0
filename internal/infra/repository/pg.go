package repository

import (
	"encoding/json"
	"errors"

	"coupon-wallet-service/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// classifyWriteErr maps driver-level constraint failures onto repository
// error kinds so the usecase layer can distinguish a code collision from a
// generic failure.
func classifyWriteErr(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.KindDuplicateKey
		case pgErrCodeForeignKeyViolation:
			return infra.KindForeignKeyViolated
		}
	}
	return infra.KindDBFailure
}

// marshalDoc encodes a JSONB document; nil maps become SQL NULL.
func marshalDoc(doc map[string]any) ([]byte, error) {
	if doc == nil {
		return nil, nil
	}
	return json.Marshal(doc)
}
