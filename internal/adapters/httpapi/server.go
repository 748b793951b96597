// Package httpapi exposes the message service as a JSON HTTP API.
//
// Caller identity comes from the X-User-ID header, which the fronting
// authentication layer is expected to set.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/barter/internal/logger"
	"github.com/example/barter/internal/ports/primary"
)

// UserIDHeader carries the authenticated caller's user ID.
const UserIDHeader = "X-User-ID"

// Options configures the optional parts of the API.
type Options struct {
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
	// Health is probed by /healthz when set.
	Health func(ctx context.Context) error
	// SendRPS and SendBurst limit sends per user. Zero values use the defaults.
	SendRPS   float64
	SendBurst int
	// MaxBodyBytes caps request bodies. Zero uses the default.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 64 << 10

// Server routes HTTP requests to the message service.
type Server struct {
	messages primary.MessageService
	opts     Options
	limiter  *limiterPool
}

// NewServer creates a Server over the given message service.
func NewServer(messages primary.MessageService, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Server{
		messages: messages,
		opts:     opts,
		limiter:  newLimiterPool(opts.SendRPS, opts.SendBurst),
	}
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	s.limiter.Shutdown()
}

// Handler returns the complete routing tree with logging and identity middleware.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(logger.RequestLogger)
	r.Use(identify)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	if s.opts.Metrics != nil {
		r.Handle("/metrics", s.opts.Metrics).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	// Messages
	api.Handle("/messages", requireUser(s.limitSends(s.sendMessage))).Methods(http.MethodPost)
	api.Handle("/messages/read", requireUser(s.markRead)).Methods(http.MethodPost)
	api.Handle("/messages/{id:[0-9]+}", requireUser(s.deleteMessage)).Methods(http.MethodDelete)

	// Conversations
	api.Handle("/conversations/{partnerID:[0-9]+}", requireUser(s.viewConversation)).Methods(http.MethodGet)
	api.Handle("/conversations/{partnerID:[0-9]+}/new", requireUser(s.pollConversation)).Methods(http.MethodGet)
	api.Handle("/conversations/{partnerID:[0-9]+}", requireUser(s.clearConversation)).Methods(http.MethodDelete)

	// Dialog list and badge
	api.Handle("/dialogs", requireUser(s.listDialogs)).Methods(http.MethodGet)
	api.HandleFunc("/unread_count", s.unreadCount).Methods(http.MethodGet)

	return r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
