package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouteProvider is implemented by all handlers of this package.
type RouteProvider interface {
	InitRoutes(r *mux.Router)
}

type healthHandler struct{}

func NewHealthHandler() RouteProvider {
	return healthHandler{}
}

func (h healthHandler) InitRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.getHealth).Methods("GET")
}

func (healthHandler) getHealth(w http.ResponseWriter, r *http.Request) {
	Respond(r).WithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
