package docgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ServiceError is a non-success response from the Generation Service.
// Detail carries the service's human-readable message when the error body
// contained one.
type ServiceError struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *ServiceError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Endpoint, e.Status, e.Detail)
}

// Describe turns err into a message for the user: the service detail when
// one was reported, fallback otherwise.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var se *ServiceError
	if errors.As(err, &se) && strings.TrimSpace(se.Detail) != "" {
		return strings.TrimSpace(se.Detail)
	}
	return fallback
}

// decodeDetail extracts the "detail" field of an error body. The field is
// either a plain string or a list of validation entries with a "msg" field.
func decodeDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if m := strings.TrimSpace(e.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
