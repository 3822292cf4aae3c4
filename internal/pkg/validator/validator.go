package validator

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks struct tags and reports failures as INVALID_REQUEST with
// the offending fields in the details.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ErrInvalidRequest.Wrap(err)
	}

	fields := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fieldPath(fe.Namespace())] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"fields": fields,
	}).Wrap(err)
}

// fieldPath drops the root struct name from a namespace like
// "WarmRoutesRequest.pairs[0].origin.iata".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// GetValidator exposes the shared validator for custom registrations.
func GetValidator() *validator.Validate {
	return validate
}
