package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	body, marshalErr := json.Marshal(v)
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"error": %q}`, marshalErr.Error())
		return
	}
	w.WriteHeader(status)
	w.Write(body)
}

// Error writes {"error": message}. Details are only added when present.
func Error(w http.ResponseWriter, status int, message string, details ...string) {
	response := struct {
		Error   string `json:"error"`
		Details string `json:"details,omitempty"`
	}{
		Error: message,
	}
	if len(details) > 0 {
		response.Details = details[0]
	}
	JSON(w, status, response)
}
