package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/influmatch/backend/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type signupCredentials struct {
	UserName string `validate:"required,min=1,max=64"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=72"`
}

type loginCredentials struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,max=72"`
}

func validateSignup(userName, email, password string) error {
	return asValidationError(validate.Struct(signupCredentials{
		UserName: userName,
		Email:    email,
		Password: password,
	}))
}

func validateLogin(email, password string) error {
	return asValidationError(validate.Struct(loginCredentials{
		Email:    email,
		Password: password,
	}))
}

func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if ok := asFieldErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return commonerrors.NewDomainError(
			"VALIDATION_FAILED",
			commonerrors.CategoryValidation,
			400,
			fmt.Sprintf("%s failed on %s", snakeCase(fe.Field()), fe.Tag()),
		).WithCause(err)
	}

	return ErrValidation.WithCause(err)
}

func asFieldErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = fieldErrs
	return true
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
