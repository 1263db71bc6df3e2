package entity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/planner/pkg/timeutil"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := timeutil.ParseDate(fl.Field().String(), nil)
			return err == nil
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, _, err := timeutil.ParseClock(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("monthkey", func(fl validator.FieldLevel) bool {
			_, err := timeutil.ParseMonthKey(fl.Field().String(), nil)
			return err == nil
		})
		validate = v
	})
	return validate
}

// Validate checks a Task, Project or Habit. Failures wrap ErrValidation and
// name each offending field.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "isodate":
		return fmt.Sprintf("%s must be YYYY-MM-DD, got %q", fe.Field(), fe.Value())
	case "clock":
		return fmt.Sprintf("%s must be HH:MM, got %q", fe.Field(), fe.Value())
	case "monthkey":
		return fmt.Sprintf("%s must be YYYY-MM, got %q", fe.Field(), fe.Value())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
