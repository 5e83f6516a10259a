package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds the size of a JSON request body.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. An empty body yields the zero
// value so that requests whose fields are all optional can omit the body.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, nil
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}

	return req, nil
}
