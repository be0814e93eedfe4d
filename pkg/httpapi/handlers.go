package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lander2k2/silenus-provisioner/pkg/errs"
)

func parseID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		raw = r.URL.Query().Get(name)
	}
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.Newf(errs.PrecondFail, "%s must be an integer", name)
	}
	return id, nil
}

func (s *Server) listJurisdictionTypes(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	if id != 0 {
		jt, err := s.Store.GetJurisdictionType(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, jt)
		return
	}
	jts, err := s.Store.GetJurisdictionTypes(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, jts)
}

func (s *Server) listConfigurationTemplates(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	if id != 0 {
		ct, err := s.Store.GetConfigurationTemplate(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, ct)
		return
	}
	cts, err := s.Store.GetConfigurationTemplates(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, cts)
}

func (s *Server) listJurisdictions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	if id != 0 {
		j, err := s.Store.GetJurisdiction(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, j)
		return
	}
	js, err := s.Store.GetJurisdictions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, js)
}

func (s *Server) getJurisdiction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	j, err := s.Store.GetJurisdiction(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}

type createJurisdictionRequest struct {
	Name       string `json:"name"`
	TypeID     int64  `json:"type_id"`
	TemplateID int64  `json:"template_id"`
	ParentID   *int64 `json:"parent_id,omitempty"`
}

func (s *Server) createJurisdiction(w http.ResponseWriter, r *http.Request) {
	var req createJurisdictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.PrecondFail, err, "invalid request body"))
		return
	}
	if req.Name == "" {
		s.writeError(w, errs.New(errs.PrecondFail, "name is required"))
		return
	}

	tmpl, err := s.Store.GetConfigurationTemplate(r.Context(), req.TemplateID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if tmpl.JurisdictionTypeID != req.TypeID {
		s.writeError(w, errs.Newf(errs.PrecondFail,
			"configuration template %d is not for jurisdiction type %d", req.TemplateID, req.TypeID))
		return
	}

	j, err := s.Store.CreateJurisdiction(r.Context(), req.Name, req.TypeID, req.ParentID, tmpl.Configuration)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, j)
}

// editJurisdictionRequest only accepts the keys a caller may edit on an
// inactive jurisdiction: name, metadata, configuration.
type editJurisdictionRequest struct {
	Name          *string           `json:"name,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Configuration map[string]any    `json:"configuration,omitempty"`
}

func (s *Server) editJurisdiction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req editJurisdictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.PrecondFail, err, "invalid request body"))
		return
	}

	j, err := s.Store.EditJurisdiction(r.Context(), id, req.Name, req.Metadata, req.Configuration)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}

func (s *Server) provisionJurisdiction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Orchestrator.Provision(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	j, err := s.Store.GetJurisdiction(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}

func (s *Server) decommissionJurisdiction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Orchestrator.Decommission(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	j, err := s.Store.GetJurisdiction(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}
