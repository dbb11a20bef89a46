package http

import (
	"github.com/google/uuid"

	commonerrors "github.com/influmatch/backend/internal/common/errors"
)

var errEmptyID = commonerrors.NewDomainError(
	"EMPTY_ID",
	commonerrors.CategoryValidation,
	400,
	"id cannot be empty",
)

func ValidateUUID(s string) error {
	if s == "" {
		return errEmptyID
	}
	_, err := uuid.Parse(s)
	return err
}
