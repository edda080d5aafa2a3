package apperrors

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldMessages maps "<StructField>.<tag>" to a client message.
type FieldMessages map[string]string

// BindingError converts a gin binding failure into a 400. Validator field
// errors are listed under details.fields; anything else is a malformed body.
func BindingError(err error, messages FieldMessages) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Validation("Malformed request body").WithCause(err)
	}

	fields := make(map[string]string, len(verrs))
	first := ""
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("Invalid value for field '%s'", lowerFirst(fe.Field()))
		}
		if first == "" {
			first = msg
		}
		fields[lowerFirst(fe.Field())] = msg
	}
	return Validation(first).WithDetail("fields", fields).WithCause(err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
