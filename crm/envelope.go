package crm

import (
	"context"
	"net/http"

	"github.com/coworkpro/clientkit/api"
)

// envelope is the uniform response wrapper the backend puts around every
// JSON payload.
type envelope[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// unwrap issues the request and returns the envelope's data. A 2xx response
// carrying success=false still counts as a failure and is converted into an
// api error with the envelope's message.
func unwrap[T any](ctx context.Context, client *api.Client, method, path string, body any) (T, error) {
	var env envelope[T]
	if err := client.Do(ctx, method, path, body, &env); err != nil {
		var zero T
		return zero, err
	}
	if !env.Success {
		var zero T
		return zero, envelopeError(env.Message, env.Errors)
	}
	return env.Data, nil
}

func envelopeError(message string, errs []string) error {
	if message == "" {
		message = "request rejected"
	}
	return &api.Error{Status: http.StatusOK, Message: message, Errors: errs}
}
