package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-org-service/auth"
	"github.com/jrsteele09/go-org-service/internal/config"
	"github.com/jrsteele09/go-org-service/organizations"
	"github.com/jrsteele09/go-org-service/token"
)

// Pinger reports backing-store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP layer over the organization lifecycle and session
// managers. It owns routing, request validation and the taxonomy-to-status
// mapping; all business rules live in the services it calls.
type Server struct {
	env       string
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	lifecycle organizations.Lifecycle
	sessions  auth.SessionManager
	tokens    *token.Manager
	store     Pinger
}

func New(cfg config.Config, lifecycle organizations.Lifecycle, sessions auth.SessionManager, tokens *token.Manager, store Pinger) (*Server, error) {
	if lifecycle == nil {
		return nil, fmt.Errorf("[Server New] lifecycle service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("[Server New] session manager is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("[Server New] token manager is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		lifecycle: lifecycle,
		sessions:  sessions,
		tokens:    tokens,
		store:     store,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
