package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

var validate = newValidator()

// decimal.Decimal проверяется тегами gte/lte как число.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// normalizeClock приводит "9:00" и "09:00:00" к виду "09:00", остальное оставляет валидатору.
func normalizeClock(s string) string {
	c, err := model.ParseClock(s)
	if err != nil {
		return s
	}
	return c.String()
}

// validateInput переводит ошибки валидатора в domain.ValidationError (первая ошибка).
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	return &domain.ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "datetime":
		return fmt.Sprintf("%q does not match format %s", fe.Value(), fe.Param())
	}
	return "failed " + fe.Tag() + " check"
}

// ParseRate разбирает ставку из текста ("4.18" или "4,18"). Inf и NaN не принимаются.
func ParseRate(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return decimal.Zero, &domain.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a number", s)}
	}
	return d, nil
}
