package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"modernc.org/sqlite"
)

// Extended result codes of constraint violations.
const (
	sqliteConstraint           = 19
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// mapError translates driver errors into application errors. what describes
// the failed operation and prefixes the message.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch code := sqliteErr.Code(); {
		case code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey:
			return fmt.Errorf("%s: %w", what, apperrors.ErrDuplicate)
		case code == sqliteConstraintForeignKey:
			return fmt.Errorf("%s: %w: referenced row does not exist", what, apperrors.ErrIntegrity)
		case code&0xff == sqliteConstraint:
			if strings.Contains(sqliteErr.Error(), "UNIQUE") {
				return fmt.Errorf("%s: %w", what, apperrors.ErrDuplicate)
			}
			return fmt.Errorf("%s: %w: %v", what, apperrors.ErrIntegrity, sqliteErr)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
