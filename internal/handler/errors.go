package handler

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithField("error", err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   status,
		"message": errorMessages[status],
	})
}
