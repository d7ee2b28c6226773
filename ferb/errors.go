package ferb

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmdatafocus/intake_backend/models"
)

// APIError is a failed FERB call. Body is the response as received.
// Err is set for transport and decoding failures.
type APIError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ferb api error %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("ferb api error %d: %s", e.Status, strings.TrimSpace(string(e.Body)))
}

func (e *APIError) Unwrap() error { return e.Err }

// Payload converts any error from this package into the error notice
// recorded in session state. A JSON body is passed through unmodified.
func Payload(err error) *models.ErrorPayload {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return &models.ErrorPayload{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	p := &models.ErrorPayload{Status: apiErr.Status}
	if apiErr.Err != nil {
		p.Message = apiErr.Err.Error()
	}
	if len(apiErr.Body) > 0 {
		if json.Valid(apiErr.Body) {
			p.Body = json.RawMessage(apiErr.Body)
		} else {
			p.Body, _ = json.Marshal(string(apiErr.Body))
		}
	}
	return p
}
