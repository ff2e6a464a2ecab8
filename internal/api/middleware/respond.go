package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/staffdesk/api/internal/api/types"
)

func deny(w http.ResponseWriter, status int, errName, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{Error: errName, Message: msg})
}
