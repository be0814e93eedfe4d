// Package httpapi exposes the provisioner's jurisdiction lifecycle over
// HTTP, using go-chi/chi for routing. Handlers never touch the cloud or
// the queue directly: reads go through *store.Store, writes that affect
// cloud resources go through *orchestrator.Deps.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/lander2k2/silenus-provisioner/pkg/errs"
	"github.com/lander2k2/silenus-provisioner/pkg/orchestrator"
	"github.com/lander2k2/silenus-provisioner/pkg/store"
)

// Server holds the collaborators every handler needs.
type Server struct {
	Store        *store.Store
	Orchestrator *orchestrator.Deps
	Log          *logrus.Logger
}

// Router builds the chi router for the /v1 surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/jurisdiction_types", s.listJurisdictionTypes)
		r.Get("/configuration_templates", s.listConfigurationTemplates)

		r.Get("/jurisdictions", s.listJurisdictions)
		r.Post("/jurisdictions", s.createJurisdiction)
		r.Get("/jurisdictions/{id}", s.getJurisdiction)
		r.Put("/jurisdictions/{id}", s.editJurisdiction)
		r.Put("/jurisdictions/{id}/provision", s.provisionJurisdiction)
		r.Put("/jurisdictions/{id}/decommission", s.decommissionJurisdiction)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Debug("http request")
		next.ServeHTTP(w, r)
	})
}

// envelope is the `{data: ...}` shape every successful response uses.
type envelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

// writeError maps err to an HTTP status per its errs.Kind. Anything that
// isn't an *errs.Error is logged and returned as 500; every known Kind
// returns 400, per the handler-visible-errors policy.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if _, ok := errs.KindOf(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorEnvelope{Error: err.Error()})
		return
	}

	s.Log.WithError(err).Error("unhandled error")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: "internal error"})
}
