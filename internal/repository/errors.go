package repository

import (
	"errors"
	"fmt"

	"bookalink/internal/apperr"

	"gorm.io/gorm"
)

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return apperr.Store(op, err)
}
