package handlers

import (
	"net/http"
)

// Health reports process liveness. It deliberately checks nothing downstream:
// Redis or Postgres trouble shows up on the endpoints that use them, not here.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}
