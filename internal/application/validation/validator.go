// Package validation valida los DTOs de entrada con etiquetas `validate` y reúne todos los errores.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/pkg/slug"
)

// Normalizer DTOs que se limpian (trim, mayúsculas) antes de validar.
type Normalizer interface {
	Normalize()
}

// FieldValidator DTOs con reglas entre campos que las etiquetas no expresan.
type FieldValidator interface {
	ValidateFields() []domain.FieldError
}

// MessageProvider DTOs con mensajes propios, clave "campo.regla".
type MessageProvider interface {
	Messages() map[string]string
}

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return objectIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})
	return v
}

// Validate normaliza in (si aplica), corre todas las reglas sin cortar en la primera
// y devuelve *domain.ValidationError con cada mensaje, o nil.
func Validate(in interface{}) error {
	if n, ok := in.(Normalizer); ok {
		n.Normalize()
	}
	var custom map[string]string
	if m, ok := in.(MessageProvider); ok {
		custom = m.Messages()
	}

	var fields []domain.FieldError
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			name := fieldPath(fe)
			msg, ok := custom[name+"."+fe.Tag()]
			if !ok {
				msg = message(name, fe)
			}
			fields = append(fields, domain.FieldError{Field: name, Message: msg})
		}
	}
	if fv, ok := in.(FieldValidator); ok {
		fields = append(fields, fv.ValidateFields()...)
	}
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldPath ruta del campo sin el nombre del struct raíz: "dimensions.length", "images[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(name string, fe validator.FieldError) string {
	q := fmt.Sprintf("%q", name)
	switch fe.Tag() {
	case "required":
		return q + " is required"
	case "email":
		return q + " must be a valid email"
	case "url":
		return q + " must be a valid uri"
	case "min", "max":
		return boundMessage(q, fe)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", q, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", q, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "objectid":
		return q + " must be a valid id"
	case "slug":
		return q + " may only contain lowercase letters, numbers and hyphens"
	case "number":
		return q + " must be a number"
	default:
		return fmt.Sprintf("%s failed on the %s rule", q, fe.Tag())
	}
}

func boundMessage(q string, fe validator.FieldError) string {
	least := fe.Tag() == "min"
	switch fe.Kind() {
	case reflect.String:
		if least {
			return fmt.Sprintf("%s length must be at least %s characters long", q, fe.Param())
		}
		return fmt.Sprintf("%s length must be less than or equal to %s characters long", q, fe.Param())
	case reflect.Slice, reflect.Map, reflect.Array:
		if least {
			return fmt.Sprintf("%s must contain at least %s items", q, fe.Param())
		}
		return fmt.Sprintf("%s must contain less than or equal to %s items", q, fe.Param())
	default:
		if least {
			return fmt.Sprintf("%s must be greater than or equal to %s", q, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", q, fe.Param())
	}
}
