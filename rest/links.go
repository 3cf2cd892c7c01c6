package rest

import (
	"net/http"
	"strconv"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
	"bitbucket.org/kleinnic74/lsgmap/logging"
	"bitbucket.org/kleinnic74/lsgmap/mapslink"
	"bitbucket.org/kleinnic74/lsgmap/resolver"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	msgNoURL           = "No URL provided"
	msgResolveFailed   = "Failed to resolve URL"
	msgNoCoordinates   = "No coordinates found"
	msgInvalidLocation = "Invalid lat/lon"
)

var extractedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "rest",
	Name:      "coordinates_extracted_total",
	Help:      "Number of coordinate extractions from map links, by result",
}, []string{"result"})

type resolvedLink struct {
	FinalURL string `json:"finalUrl"`
}

type LinksHandler struct {
	resolver resolver.Resolver
}

func NewLinksHandler(r resolver.Resolver) *LinksHandler {
	return &LinksHandler{resolver: r}
}

func (h *LinksHandler) InitRoutes(r *mux.Router) {
	r.HandleFunc("/api/resolve-link", h.resolveLink).Methods("GET")
	r.HandleFunc("/api/coordinates", h.getCoordinates).Methods("GET")
}

func (h *LinksHandler) resolveLink(w http.ResponseWriter, r *http.Request) {
	shortURL := r.URL.Query().Get("url")
	if shortURL == "" {
		Respond(r).WithMessage(w, http.StatusBadRequest, msgNoURL)
		return
	}
	final, err := h.resolver.Resolve(r.Context(), shortURL)
	if err != nil {
		logging.From(r.Context()).Error("Error resolving short URL", zap.String("url", shortURL), zap.Error(err))
		Respond(r).WithMessage(w, http.StatusInternalServerError, msgResolveFailed)
		return
	}
	Respond(r).WithJSON(w, http.StatusOK, resolvedLink{FinalURL: final})
}

func (h *LinksHandler) getCoordinates(w http.ResponseWriter, r *http.Request) {
	log, ctx := logging.SubFrom(r.Context(), "coordinates")
	link := r.URL.Query().Get("url")
	if link == "" {
		Respond(r).WithMessage(w, http.StatusBadRequest, msgNoURL)
		return
	}
	if resolve, _ := strconv.ParseBool(r.URL.Query().Get("resolve")); resolve {
		final, err := h.resolver.Resolve(ctx, link)
		if err != nil {
			log.Error("Error resolving short URL", zap.String("url", link), zap.Error(err))
			Respond(r).WithMessage(w, http.StatusInternalServerError, msgResolveFailed)
			return
		}
		link = final
	}
	c, found := mapslink.ExtractContext(ctx, link)
	if !found {
		extractedCount.WithLabelValues("missing").Inc()
		Respond(r).WithMessage(w, http.StatusNotFound, msgNoCoordinates)
		return
	}
	extractedCount.WithLabelValues("found").Inc()
	Respond(r).WithJSON(w, http.StatusOK, c)
}

func parseCoordinates(r *http.Request) (gps.Coordinates, error) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return gps.Coordinates{}, err
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return gps.Coordinates{}, err
	}
	return gps.NewCoordinates(lat, lon), nil
}
