package repositories

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	domainerrors "obra-connect.backend/internal/domain/errors"
)

const pqUniqueViolation = "23505"

// isUniqueViolation recognizes duplicate key failures from postgres (lib/pq) and sqlite
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translateError maps driver errors onto domain sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case isUniqueViolation(err):
		return domainerrors.ErrAlreadyExists
	}
	return err
}

func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
