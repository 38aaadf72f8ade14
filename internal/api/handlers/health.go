package handlers

import (
	"net/http"
)

// Health provides a minimal liveness check endpoint. It does not call the
// content API.
func Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}
