// Package api exposes the answering pipeline over HTTP for external
// dashboards and tooling.
package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"jamesfarrell.me/youtube-rag/internal/rag"
)

// Router serves the session API. Active sessions live in memory and
// are discarded with the process.
type Router struct {
	*mux.Router

	deps       rag.Deps
	serviceKey string

	mu       sync.RWMutex
	sessions map[string]*rag.Session
}

func NewRouter(deps rag.Deps, serviceKey string) *Router {
	r := &Router{
		Router:     mux.NewRouter(),
		deps:       deps,
		serviceKey: serviceKey,
		sessions:   make(map[string]*rag.Session),
	}

	// Public routes
	public := r.Router.PathPrefix("/public").Subrouter()
	public.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Protected routes
	protected := r.Router.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware)

	videos := protected.PathPrefix("/videos").Subrouter()
	videos.HandleFunc("", r.processVideo).Methods(http.MethodPost)
	videos.HandleFunc("/{id}/ask", r.askQuestion).Methods(http.MethodPost)
	videos.HandleFunc("/{id}/summary", r.getSummary).Methods(http.MethodGet)
	videos.HandleFunc("/{id}/summaries", r.getAllSummaries).Methods(http.MethodGet)
	videos.HandleFunc("/{id}/qa", r.generateQA).Methods(http.MethodPost)
	videos.HandleFunc("/{id}/report", r.getReport).Methods(http.MethodGet)
	videos.HandleFunc("/{id}/export", r.exportReport).Methods(http.MethodPost)

	return r
}

func (r *Router) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apiKey := req.Header.Get("X-API-Key")
		if apiKey == "" {
			http.Error(w, "Missing API key", http.StatusUnauthorized)
			return
		}
		if apiKey != r.serviceKey {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (r *Router) session(id string) (*rag.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

func (r *Router) storeSession(id string, session *rag.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = session
}
