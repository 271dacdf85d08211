package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"tv-keuzehulp-be/internal/apperror"
	"tv-keuzehulp-be/internal/constant"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs struct tag validation and folds failures into a
// validation error carrying the generic Dutch message
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Validation(constant.MsgInvalidRequest, err)
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return apperror.Validation(constant.MsgInvalidRequest, errors.New(strings.Join(parts, "; ")))
}
