package handler

import "net/http"

// healthResponse is the liveness sentinel body.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// health handles GET /api/health.
// It returns HTTP 200 whenever the server is up; it deliberately does not
// touch the database, so a degraded store never hides the process itself.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "Travel Log API is running"})
}
