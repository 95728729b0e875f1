package respond

import (
	"encoding/json"
	"net/http"

	"github.com/hongminglow/authgate/internal/logutil"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes payload as a JSON response with the given status. Encoding
// failures are logged with the request-scoped logger.
func JSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Msg("respond: encode payload failed")
	}
}

// Error writes a short, client-safe error message.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, ErrorBody{Error: message})
}
