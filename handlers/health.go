package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HealthHandler serves the hosting provider's health probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Printf("⚠️ Failed to write health check response: %v", err)
	}
}

// Router builds the HTTP routes for the health server
func (h *HealthHandler) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", h.HandleHealthCheck).Methods(http.MethodGet)
	return router
}
