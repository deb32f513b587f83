package http

import (
	"net/http"
)

// getVersion reports the build of the running mock API. It is served
// outside the /api/v1 group, so it needs no token.
func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.buildInfo)
}
