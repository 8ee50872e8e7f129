// Package httputil centralizes the JSON response envelope and domain error
// translation so every handler speaks the same shape:
//
//	{"success": true,  "message": "...", "data": {...}}
//	{"success": false, "message": "..."}
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "bizcore/pkg/domain-errors"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// internalMessage is what clients see for unexpected failures. Details stay in
// server logs, never in the response body.
const internalMessage = "Something went wrong"

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore
	// encoding errors. The response body may be incomplete, but headers are
	// already sent.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteSuccess writes a success envelope with optional message and payload.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteError translates a domain error into the failure envelope. Messages of
// internal errors are replaced with a generic line; all other codes carry
// their domain message, which is written for clients.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := StatusForCode(domainErr.Code)
		message := domainErr.Message
		if domainErr.Code == dErrors.CodeInternal || message == "" {
			message = internalMessage
		}
		WriteJSON(w, status, Envelope{Success: false, Message: message})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, Envelope{Success: false, Message: internalMessage})
}

// StatusForCode translates domain error codes to HTTP status codes.
// Conflicts map to 400 to match the public auth contract: duplicate tax
// numbers and emails are client errors the caller fixes by choosing
// different values.
func StatusForCode(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeConflict:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
