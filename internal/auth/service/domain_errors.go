package service

import (
	commonerrors "github.com/influmatch/backend/internal/common/errors"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so responses cannot be used for account enumeration.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		401,
		"Invalid email or password",
	)

	ErrEmailTaken = commonerrors.ErrEmailAlreadyExists

	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		400,
		"validation failed",
	)
)
