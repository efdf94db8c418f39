// AngelaMos | 2026
// validation.go

package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the "detalhes" list returned on validation
// failure.
type FieldError struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

// Layouts accepted by the isodate tag and by ParseISODate.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var idValidator = validator.New()

// NewValidator returns a validator that reports JSON field names and knows
// the cpf and isodate tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	//nolint:errcheck // tags are static and valid
	_ = v.RegisterValidation("cpf", validateCPF)
	//nolint:errcheck // tags are static and valid
	_ = v.RegisterValidation("isodate", validateISODate)

	return v
}

func validateCPF(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 11 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// validateISODate accepts a blank value so optional dates may be sent as "".
// Mandatory fields pair the tag with required.
func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if strings.TrimSpace(value) == "" {
		return true
	}
	_, err := ParseISODate(value)
	return err == nil
}

// ParseISODate parses the date-time formats accepted on the wire.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidInput)
}

// IsObjectID reports whether s is a 24 character lowercase hex identifier.
func IsObjectID(s string) bool {
	return idValidator.Var(s, "required,mongodb") == nil
}

// ValidationDetails flattens validator errors into one FieldError per
// violated field rule.
func ValidationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Campo: "", Mensagem: "Corpo da requisição inválido"}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Campo:    fe.Field(),
			Mensagem: fieldMessage(fe),
		})
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "E-mail inválido"
	case "min":
		return fmt.Sprintf("Deve ter no mínimo %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("Deve ter no máximo %s caracteres", fe.Param())
	case "cpf":
		return "CPF deve conter 11 dígitos"
	case "isodate":
		return "Data e hora inválida"
	case "mongodb":
		return "ID inválido"
	case "oneof":
		return fmt.Sprintf("Valor deve ser um de: %s", fe.Param())
	default:
		return fmt.Sprintf("Falhou na regra %s", fe.Tag())
	}
}
