package shared

import (
	"encoding/json"
	"net/http"

	dErrors "propertyhub/pkg/domain-errors"
)

// DecodeBody reads a JSON object body into a generic map for schema
// validation. UseNumber keeps numeric literals intact so amount precision is
// judged on what the client actually sent.
func DecodeBody(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body")
	}
	return body, nil
}
