package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

// An Enumerable has a closed set of valid values, like burrow.Environment.
// Fields tagged `validate:"enum"` hold an Enumerable or a non-empty slice of them.
type Enumerable interface {
	Valid() error
}

func newValidate() *v10.Validate {
	v := v10.New()
	v.RegisterValidation("enum", isEnum)
	v.RegisterTagNameFunc(fieldName)

	return v
}

// fieldName names a field by the key a payload sets it with.
func fieldName(f reflect.StructField) string {
	for _, tag := range [...]string{"json", "schema"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}

		if name != "" {
			return name
		}
	}

	return f.Name
}

// check applies the "validate" struct tags of structPtr,
// collecting the rules broken into ValidationErrors.
func check(v *v10.Validate, structPtr any) error {
	var fieldErrs v10.ValidationErrors
	if err := v.Struct(structPtr); !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Drop the struct's own name.
		_, field, _ := strings.Cut(fe.Namespace(), ".")

		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		errs = append(errs, ValidationError{Field: field, Value: fe.Value(), Rule: rule})
	}

	return errs
}

func isEnum(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return validEnum(field)
	}

	if field.Len() == 0 {
		return false
	}

	for i := 0; i < field.Len(); i++ {
		if !validEnum(field.Index(i)) {
			return false
		}
	}

	return true
}

func validEnum(v reflect.Value) bool {
	if !v.CanInterface() {
		return false
	}

	e, ok := v.Interface().(Enumerable)
	return ok && e.Valid() == nil
}
