package rest

import (
	"net/http"
	"strconv"

	"bitbucket.org/kleinnic74/lsgmap/logging"
	"github.com/gorilla/mux"
)

type logsHandler struct{}

func NewLogsHandler() logsHandler {
	return logsHandler{}
}

func (l logsHandler) InitRoutes(r *mux.Router) {
	r.Handle("/logs", l).Methods("GET")
}

// ServeHTTP dumps the in-memory logs, newest first unless ?reverse=false
func (l logsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reverse := true
	if v, err := strconv.ParseBool(r.URL.Query().Get("reverse")); err == nil {
		reverse = v
	}
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	logging.Dump(w, reverse)
}
