package response

import (
	"encoding/json"
	"net/http"
)

// Response is the failure envelope. Successful bodies carry "success": true
// next to the payload fields.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Fields are top-level payload members of a successful response.
type Fields map[string]interface{}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// envelope flattens payload into a JSON object with "success" set.
// payload may be Fields or any struct that encodes to a JSON object.
func envelope(payload interface{}) (map[string]json.RawMessage, error) {
	body := map[string]json.RawMessage{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
	}
	body["success"] = json.RawMessage("true")
	return body, nil
}

func writeSuccess(w http.ResponseWriter, statusCode int, payload interface{}) {
	body, err := envelope(payload)
	if err != nil {
		InternalServerError(w, "Failed to encode response")
		return
	}
	writeJSON(w, statusCode, body)
}

// Success responses
func Success(w http.ResponseWriter, payload interface{}) {
	writeSuccess(w, http.StatusOK, payload)
}

func SuccessWithMessage(w http.ResponseWriter, message string) {
	writeSuccess(w, http.StatusOK, Fields{"message": message})
}

func Created(w http.ResponseWriter, payload interface{}) {
	writeSuccess(w, http.StatusCreated, payload)
}

func writeError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	writeJSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Error responses
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	writeError(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}

func Conflict(w http.ResponseWriter, message string) {
	writeError(w, http.StatusConflict, "CONFLICT", message, nil)
}
