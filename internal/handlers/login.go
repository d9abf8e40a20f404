// internal/handlers/login.go
package handlers

import (
	"encoding/json"
	"net/http"

	"tictactoe-backend/internal/coordinator"
)

// LoginRequest is the name pre-check payload.
type LoginRequest struct {
	Name string `json:"name"`
}

// LoginResponse reports whether the requested name is currently free.
type LoginResponse struct {
	Success bool `json:"success"`
}

// LoginHandler answers the "is this name free" pre-check against the live
// Directory. Informational only: it does not reserve the name, the
// coordinator stays the source of truth. Browser clients hit this
// cross-origin, so the endpoint answers CORS preflight itself.
func LoginHandler(coord *coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, POST")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad login payload", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{Success: !coord.NameTaken(req.Name)})
	}
}
