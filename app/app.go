package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bitbucket.org/kleinnic74/lsgmap/consts"
	"bitbucket.org/kleinnic74/lsgmap/linkcache"
	"bitbucket.org/kleinnic74/lsgmap/logging"
	"bitbucket.org/kleinnic74/lsgmap/lsg"
	"bitbucket.org/kleinnic74/lsgmap/resolver"
	"bitbucket.org/kleinnic74/lsgmap/rest"
	"github.com/gorilla/mux"
	"github.com/kleinnic74/fflags"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type App struct {
	dir string

	db     *bolt.DB
	router *mux.Router

	addr string

	shutdownHandlers shutdownHandlers
}

type shutdownHandler func(context.Context, *App)

const (
	dbName = "lsgmap.db"
)

type shutdownHandlers struct {
	h []shutdownHandler
}

func (hdls *shutdownHandlers) Add(h shutdownHandler) {
	hdls.h = append(hdls.h, h)
}

func (hdls shutdownHandlers) Execute(ctx context.Context, a *App) {
	for i := len(hdls.h) - 1; i >= 0; i-- {
		hdls.h[i](ctx, a)
	}
}

func NewApp(ctx context.Context, o Options) (_ *App, err error) {
	logger, ctx := logging.SubFrom(ctx, "app")

	logger.Info("Data directory", zap.String("dir", o.DataDir))
	if err = os.MkdirAll(o.DataDir, os.ModePerm); err != nil {
		return nil, err
	}

	a := &App{
		dir:    o.DataDir,
		addr:   fmt.Sprintf(":%d", o.Port),
		router: mux.NewRouter(),
	}
	defer func() {
		if err != nil {
			a.shutdownHandlers.Execute(ctx, a)
		}
	}()

	a.db, err = bolt.Open(filepath.Join(o.DataDir, dbName), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("Failed to initialize data store: %w", err)
	}
	a.shutdownHandlers.Add(func(ctx context.Context, a *App) {
		a.db.Close()
		logging.From(ctx).Info("Closed data store")
	})

	var links resolver.Resolver = resolver.NewHTTPResolver(resolver.WithTimeout(o.ResolveTimeout))
	if err = fflags.IfEnabled(fflags.Define("links.cache"), func() error {
		cache, err := linkcache.New(a.db, links, o.LinkTTL)
		if err != nil {
			return err
		}
		links = cache
		rest.NewLinkCacheHandler(cache).InitRoutes(a.router)
		logger.Info("Link cache enabled", zap.Duration("ttl", o.LinkTTL))
		return nil
	}); err != nil {
		return nil, fmt.Errorf("Failed to initialize link cache: %w", err)
	}

	// REST Handlers

	handlers := []rest.RouteProvider{
		rest.NewHealthHandler(),
		rest.NewMetricsHandler(),
		rest.NewLinksHandler(links),
	}

	if o.GeoJSON != "" {
		var fc *lsg.FeatureCollection
		if fc, err = lsg.LoadFeatureCollection(o.GeoJSON); err != nil {
			return nil, fmt.Errorf("Failed to load LSG boundaries: %w", err)
		}
		handlers = append(handlers, rest.NewLSGHandler(lsg.NewIndex(ctx, fc)))
	} else {
		logger.Warn("No LSG GeoJSON configured, search and locate are disabled")
	}

	if consts.IsDevMode() {
		handlers = append(handlers, rest.NewLogsHandler(), rest.DebugHandler{})
	}

	for _, h := range handlers {
		h.InitRoutes(a.router)
	}

	return a, nil
}

// Handler returns the router wrapped with the standard middlewares.
func (a *App) Handler() http.Handler {
	return rest.WithMiddleWares(a.router, "rest")
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) {
	logger, ctx := logging.SubFrom(ctx, "app")

	var wg sync.WaitGroup
	server := http.Server{
		Addr:              a.addr,
		Handler:           a.Handler(),
		BaseContext:       func(l net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 5 * time.Second,
	}
	wg.Add(1)
	go func() {
		logger, _ := logging.SubFrom(ctx, "http")
		logger.Info("Starting HTTP server...", zap.String("bindAddr", a.addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
		logger.Info("DONE")
		wg.Done()
	}()

	<-ctx.Done()

	logger.Info("Stopping...")

	ctxShutdown, cancelServerShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelServerShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	wg.Wait()

	a.shutdownHandlers.Execute(ctxShutdown, a)
	logger.Info("Terminated gracefully")
}
