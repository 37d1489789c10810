package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-mgmt-agent/internal/auth"
	"github.com/MKhiriev/go-mgmt-agent/internal/config"
	"github.com/MKhiriev/go-mgmt-agent/internal/logger"
)

// newRouter mounts the management endpoints under the configured
// context path, behind the configured authenticator. The protocol layer
// proper is mounted here by external collaborators; the bootstrap only
// serves identity and liveness.
func newRouter(cfg *config.AgentConfig, log *logger.Logger) http.Handler {
	sub := chi.NewRouter()
	sub.Use(requestLogger(log))
	sub.Use(authenticate(cfg.Authenticator()))
	sub.Get("/version", versionHandler(cfg))
	sub.Get("/health", healthHandler())

	root := chi.NewRouter()
	root.Mount(mountPoint(cfg.ContextPath()), sub)
	return root
}

// mountPoint converts the always-"/"-terminated context path into a chi
// mount pattern.
func mountPoint(contextPath string) string {
	mount := strings.TrimSuffix(contextPath, "/")
	if mount == "" {
		return "/"
	}
	return mount
}

// authenticate enforces the configured [auth.Authenticator]; a nil
// authenticator means no authentication at all.
func authenticate(authenticator auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if authenticator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticator.Authenticate(r) {
				w.Header().Set("WWW-Authenticate", `Basic realm="mgmt-agent"`)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger attaches the agent logger to the request context so
// handlers can use logger.FromRequest, and logs every request.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := log.WithContext(r.Context())
			log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type versionResponse struct {
	AgentID  string `json:"agent_id"`
	Protocol string `json:"protocol"`
	Context  string `json:"context"`
}

func versionHandler(cfg *config.AgentConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(versionResponse{
			AgentID:  cfg.AgentID(),
			Protocol: cfg.Protocol(),
			Context:  cfg.ContextPath(),
		}); err != nil {
			logger.FromRequest(r).Err(err).Msg("error writing version response")
		}
	}
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}
