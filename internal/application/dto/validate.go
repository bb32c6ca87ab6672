package dto

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Iris-api/internal/domain"
	"github.com/jhoicas/Iris-api/pkg/iris"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator devuelve la instancia compartida con las reglas propias registradas:
// ntncnic (7 a 13 dígitos), refno (formato de referencia IRIS) y decimal.Decimal comparable
// con gte/lte como float64.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("ntncnic", func(fl validator.FieldLevel) bool {
			return iris.ValidateNTNCNIC(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("refno", func(fl validator.FieldLevel) bool {
			return iris.ValidateRefNoFormat(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate aplica las etiquetas validate de s. Los fallos se devuelven envueltos en
// domain.ErrInvalidInput, un error por campo.
func Validate(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	errs := []error{domain.ErrInvalidInput}
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%s: no cumple %q", fe.Namespace(), ruleWithParam(fe)))
	}
	return errors.Join(errs...)
}

func ruleWithParam(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
