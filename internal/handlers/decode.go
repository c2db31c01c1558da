package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into dst and validates it with its
// `validate` struct tags. Unknown fields are ignored so clients may send
// extra per-message data such as attachments.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validate body: %w", err)
	}
	return nil
}
