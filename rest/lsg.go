package rest

import (
	"net/http"
	"strconv"

	"bitbucket.org/kleinnic74/lsgmap/logging"
	"bitbucket.org/kleinnic74/lsgmap/lsg"
	"bitbucket.org/kleinnic74/lsgmap/rest/cursor"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type LSGHandler struct {
	index *lsg.Index
}

func NewLSGHandler(index *lsg.Index) *LSGHandler {
	return &LSGHandler{index: index}
}

func (h *LSGHandler) InitRoutes(r *mux.Router) {
	r.HandleFunc("/api/search", h.search).Methods("GET")
	r.HandleFunc("/api/districts", h.getDistricts).Methods("GET")
	r.HandleFunc("/api/districts/{district}", h.getDistrict).Methods("GET")
	r.HandleFunc("/api/lsg", h.getSummary).Methods("GET")
	r.HandleFunc("/api/lsg/entries", h.listEntries).Methods("GET")
	r.HandleFunc("/api/lsg/{id:[0-9]+}", h.getEntry).Methods("GET")
	r.HandleFunc("/api/locate", h.locate).Methods("GET")
}

func (h *LSGHandler) search(w http.ResponseWriter, r *http.Request) {
	found := h.index.Search(r.URL.Query().Get("q"))
	if found == nil {
		found = []lsg.Entry{}
	}
	Respond(r).WithJSON(w, http.StatusOK, found)
}

func (h *LSGHandler) getDistricts(w http.ResponseWriter, r *http.Request) {
	Respond(r).WithJSON(w, http.StatusOK, h.index.Districts())
}

func (h *LSGHandler) getDistrict(w http.ResponseWriter, r *http.Request) {
	entries := h.index.ByDistrict(mux.Vars(r)["district"])
	if entries == nil {
		entries = []lsg.Entry{}
	}
	Respond(r).WithJSON(w, http.StatusOK, entries)
}

func (h *LSGHandler) getSummary(w http.ResponseWriter, r *http.Request) {
	Respond(r).WithJSON(w, http.StatusOK, h.index.Summary())
}

func (h *LSGHandler) listEntries(w http.ResponseWriter, r *http.Request) {
	Respond(r).WithJSON(w, http.StatusOK, cursor.Slice(h.index.Entries(), cursor.FromRequest(r)))
}

func (h *LSGHandler) getEntry(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	e, found := h.index.Get(id)
	if !found {
		Respond(r).WithMessage(w, http.StatusNotFound, "Unknown LSG")
		return
	}
	Respond(r).WithJSON(w, http.StatusOK, e)
}

func (h *LSGHandler) locate(w http.ResponseWriter, r *http.Request) {
	log := logging.From(r.Context())
	c, err := parseCoordinates(r)
	if err != nil {
		Respond(r).WithMessage(w, http.StatusBadRequest, msgInvalidLocation)
		return
	}
	e, found := h.index.Locate(c)
	if !found {
		log.Debug("No LSG at location", zap.Stringer("location", c))
		Respond(r).WithMessage(w, http.StatusNotFound, "No LSG at this location")
		return
	}
	Respond(r).WithJSON(w, http.StatusOK, e)
}
