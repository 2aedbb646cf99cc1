package handle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"shuttle-admin/internal/dashboard/core/myerrors"
)

const (
	WaitTime = 10
)

var errBadBody = errors.New("malformed request body")

// jsonResponse writes the given data as a JSON-encoded HTTP response.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// JsonError writes an error response as JSON with the specified HTTP status code.
func JsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}

type errorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
	View  any    `json:"view,omitempty"`
}

// viewResult answers with the screen state. On failure the state is still
// sent so the client can render the inline message.
func viewResult(w http.ResponseWriter, err error, view any) {
	if err == nil {
		jsonResponse(w, http.StatusOK, view)
		return
	}
	code := statusFor(err)
	jsonResponse(w, code, errorBody{Error: err.Error(), Code: code, View: view})
}

// statusFor maps dashboard errors to HTTP status codes.
func statusFor(err error) int {
	var apiErr *myerrors.APIError
	switch {
	case errors.Is(err, myerrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, myerrors.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadBody), errors.Is(err, myerrors.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, myerrors.ErrRejected):
		return http.StatusBadRequest
	case errors.Is(err, myerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, myerrors.ErrBusy),
		errors.Is(err, myerrors.ErrNoSelection),
		errors.Is(err, myerrors.ErrModalClosed),
		errors.Is(err, myerrors.ErrWidgetClosed):
		return http.StatusConflict
	case errors.Is(err, myerrors.ErrNotSupported):
		return http.StatusNotImplemented
	case errors.Is(err, myerrors.ErrDisposed):
		return http.StatusGone
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusUnauthorized {
			return http.StatusUnauthorized
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
