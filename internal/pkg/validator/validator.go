package validator

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/milepost-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report json field names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks a request DTO and converts failures into an INVALID_REQUEST AppError.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag() + paramSuffix(fe.Param())
	}
	return errors.ErrInvalidRequest.WithDetails(details)
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}
