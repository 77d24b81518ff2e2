package api

import (
	"encoding/json"
	"net/http"
)

type echoRequest struct {
	Message *string `json:"message"`
}

func handleEcho(w http.ResponseWriter, r *http.Request) {
	var request echoRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "invalid echo request body"})
		return
	}
	if request.Message == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "message is required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"echo": *request.Message})
}
