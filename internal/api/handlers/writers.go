package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/staffdesk/api/internal/api/types"
	appErr "github.com/staffdesk/api/pkg/errors"
	"github.com/staffdesk/api/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an application error onto the HTTP error envelope.
// Internal errors are logged and reduced to a generic message.
func writeError(w http.ResponseWriter, err error) {
	code := appErr.CodeOf(err)
	msg := appErr.MessageOf(err)
	fields := appErr.FieldsOf(err)

	var status int
	var name string
	switch code {
	case appErr.CodeInvalid:
		status, name = http.StatusBadRequest, "Bad Request"
		if len(fields) > 0 {
			name = "Validation Error"
		}
	case appErr.CodeUnauthorized:
		status, name = http.StatusUnauthorized, "Unauthorized"
	case appErr.CodeForbidden:
		status, name = http.StatusForbidden, "Forbidden"
	case appErr.CodeNotFound:
		status, name = http.StatusNotFound, "Not Found"
	case appErr.CodeConflict:
		status, name = http.StatusConflict, "Conflict"
	case appErr.CodeTooLarge:
		status, name = http.StatusRequestEntityTooLarge, "Request Entity Too Large"
	case appErr.CodeRateLimited:
		status, name = http.StatusTooManyRequests, "Too Many Requests"
	default:
		logger.L().Error("request failed", zap.Error(err))
		status, name = http.StatusInternalServerError, "Internal Server Error"
		msg = "An unexpected error occurred"
	}

	writeJSON(w, status, types.ErrorResponse{Error: name, Message: msg, Errors: fields})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "Bad Request", Message: msg})
}
