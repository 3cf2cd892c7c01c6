package rest

import (
	"net/http"

	"bitbucket.org/kleinnic74/lsgmap/linkcache"
	"github.com/gorilla/mux"
)

type LinkCacheHandler struct {
	cache *linkcache.Cache
}

func NewLinkCacheHandler(c *linkcache.Cache) *LinkCacheHandler {
	return &LinkCacheHandler{cache: c}
}

func (h *LinkCacheHandler) InitRoutes(r *mux.Router) {
	r.HandleFunc("/api/links/cache", h.getStats).Methods("GET")
	r.HandleFunc("/api/links/cache", h.purge).Methods("DELETE")
}

func (h *LinkCacheHandler) getStats(w http.ResponseWriter, r *http.Request) {
	Respond(r).WithJSON(w, http.StatusOK, h.cache.Stats())
}

func (h *LinkCacheHandler) purge(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Purge(r.Context()); err != nil {
		Respond(r).WithError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
