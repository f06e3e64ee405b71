package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/batepapo/internal/model"
)

// decodeFields reads a JSON object body and returns the string value of each
// named field. Absent and null fields are left empty so that schema
// validation reports them as missing. Fields holding any other non-string
// value are returned in mistyped. Only syntactically broken JSON is an
// invalid request.
func decodeFields(r *http.Request, fields ...string) (values map[string]string, mistyped []string, err error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil, model.NewValidationError(`"value" must be of type object`)
		}
		return nil, nil, NewInvalidRequestError("invalid request body")
	}

	values = make(map[string]string, len(fields))
	for _, field := range fields {
		v, ok := raw[field]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			mistyped = append(mistyped, field)
			continue
		}
		values[field] = s
	}
	return values, mistyped, nil
}
