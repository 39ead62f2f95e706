package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON 인코딩에 실패: %v", err)
	}
}

// WriteDetail writes the {"detail": ...} error envelope the public
// endpoints use.
func WriteDetail(logger *log.Logger, w http.ResponseWriter, status int, detail string) {
	WriteJSON(logger, w, status, map[string]string{"detail": detail})
}
