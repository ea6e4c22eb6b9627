package users

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/KeshavWanjale/usercrud/common/apiutil"
	"github.com/KeshavWanjale/usercrud/pkg/errors"
)

const (
	invalidDataMessage = "Invalid data"
	invalidJSONMessage = "Invalid JSON format"
)

// Payload errors. All of them map to 400; the kind tells them apart.
var (
	ErrMissingField = errors.Invalid.Reason("MissingField").Explain(invalidDataMessage)
	ErrWrongType    = errors.Invalid.Reason("WrongType").Explain(invalidDataMessage)
	ErrParse        = errors.Invalid.Reason("ParseError").Explain(invalidJSONMessage)
)

var validate = apiutil.NewValidator()

// Payload is the body accepted by create and update.
type Payload struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age"`
}

// DecodePayload parses body into a Payload. name must be a non-empty string
// and age an integer literal; floats such as 30.0, booleans, strings and null
// are rejected.
func DecodePayload(body []byte) (Payload, error) {
	var p Payload

	if !json.Valid(body) {
		return p, ErrParse
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return p, ErrWrongType.WithField("object", "body", "request body must be a JSON object")
	}

	rawName, ok := present(fields, "name")
	if !ok {
		return p, ErrMissingField.WithField("required", "name", "")
	}
	if err := json.Unmarshal(rawName, &p.Name); err != nil {
		return p, ErrWrongType.WithField("string", "name", "must be a string")
	}

	rawAge, ok := present(fields, "age")
	if !ok {
		return p, ErrMissingField.WithField("required", "age", "")
	}
	age, err := parseInt(rawAge)
	if err != nil {
		return p, ErrWrongType.WithField("integer", "age", "must be an integer")
	}
	p.Age = age

	if err := validate.Validate(p); err != nil {
		var verr *errors.Error
		if errors.As(err, &verr) {
			return p, ErrMissingField.WithFields(verr.Fields)
		}
		return p, ErrMissingField
	}

	return p, nil
}

// present returns the raw value of key unless it is absent or JSON null.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// parseInt accepts only JSON number literals without fraction or exponent.
func parseInt(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.ParseInt(num.String(), 10, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
