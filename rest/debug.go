package rest

import (
	"net/http"
	"net/http/pprof"

	"github.com/gorilla/mux"
)

type route struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods,omitempty"`
}

// DebugHandler exposes the route table and pprof, only meant for dev mode.
type DebugHandler struct{}

func (d DebugHandler) InitRoutes(router *mux.Router) {
	router.HandleFunc("/debug/routes", func(w http.ResponseWriter, r *http.Request) {
		var routes []route
		err := router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			t, err := rt.GetPathTemplate()
			if err != nil {
				return nil
			}
			methods, _ := rt.GetMethods()
			routes = append(routes, route{Path: t, Methods: methods})
			return nil
		})
		if err != nil {
			Respond(r).WithError(w, http.StatusInternalServerError, err)
			return
		}
		Respond(r).WithJSON(w, http.StatusOK, routes)
	}).Methods("GET")

	router.HandleFunc("/debug/pprof/", pprof.Index).Methods("GET")
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)

	router.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	router.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	router.Handle("/debug/pprof/allocs", pprof.Handler("allocs"))
	router.Handle("/debug/pprof/block", pprof.Handler("block"))
	router.Handle("/debug/pprof/mutex", pprof.Handler("mutex"))
}
