/*
Package resp renders the local API's JSON responses.

Every endpoint answers with the same envelope: a business code (0 on success,
an errs code otherwise), a message, and an optional payload, so a frontend
can handle lobby snapshots and send failures uniformly.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"poplobby/internal/pkg/errs"
	"poplobby/internal/pkg/logx"
)

// JSONResponse is the envelope of every local API response.
type JSONResponse struct {
	// Code is the business status code, 0 for success (see the errs package).
	Code int `json:"code"`

	// Message is the status description or error message shown to the user.
	Message string `json:"message"`

	// Data is the optional payload: a snapshot, a derived view, or nil.
	Data any `json:"data,omitempty"`
}

// RespondJSON sets the response headers and writes the encoded payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends a successful HTTP response (HTTP 200 OK).
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	res := JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	}
	RespondJSON(w, r, http.StatusOK, res)
}

// RespondError sends an HTTP response containing custom error information.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	res := JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
		Data:    nil,
	}
	RespondJSON(w, r, customErr.Status, res)
}
