package repository

import (
	"errors"

	"github.com/stockfolio/server/pkg/domain"
	"gorm.io/gorm"
)

// MapGormError converts GORM errors to domain errors so the storage
// layer never leaks driver errors upward. Unmapped errors pass through
// unchanged.
func MapGormError(err error) error {
	if err == nil {
		return nil
	}
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		switch {
		case errors.Is(cur, gorm.ErrDuplicatedKey):
			return domain.ErrConflict
		case errors.Is(cur, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
	}
	return err
}
