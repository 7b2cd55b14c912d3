package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Validate checks the validate tags on a record and wraps any failure in
// ErrValidation.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, ", "))
}

type shape int

const (
	shapeString shape = iota
	shapeArray
	shapeObject
)

func (s shape) String() string {
	switch s {
	case shapeArray:
		return "an array"
	case shapeObject:
		return "an object"
	default:
		return "a string"
	}
}

// requiredKeys is the top-level contract every stored project must meet.
var requiredKeys = []struct {
	key   string
	shape shape
}{
	{"name", shapeString},
	{"characters", shapeArray},
	{"world_settings", shapeObject},
	{"scenes", shapeArray},
	{"writing_style", shapeObject},
}

// ValidateDocument checks that raw is a JSON object carrying every required
// key with the right shape. It does not look inside the values.
func ValidateDocument(raw []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return fmt.Errorf("%w: document is not a JSON object", ErrInvalidFormat)
	}
	if top == nil {
		return fmt.Errorf("%w: document is null", ErrInvalidFormat)
	}
	for _, rk := range requiredKeys {
		val, ok := top[rk.key]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidFormat, rk.key)
		}
		if !hasShape(val, rk.shape) {
			return fmt.Errorf("%w: %q must be %s", ErrInvalidFormat, rk.key, rk.shape)
		}
	}
	return nil
}

func hasShape(val json.RawMessage, want shape) bool {
	trimmed := bytes.TrimSpace(val)
	if len(trimmed) == 0 {
		return false
	}
	switch want {
	case shapeArray:
		return trimmed[0] == '['
	case shapeObject:
		return trimmed[0] == '{'
	default:
		return trimmed[0] == '"'
	}
}
