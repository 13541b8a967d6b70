package server

import (
	"net/http"

	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
	"github.com/jrsteele09/go-org-service/token"
)

type createOrganizationRequest struct {
	Name     string `json:"organization_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type updateOrganizationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateOrganizationHandler is the public signup path: it provisions the
// tenant namespace together with the organization's admin.
func (s *Server) CreateOrganizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrganizationRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}

		org, err := s.lifecycle.Create(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, org)
	}
}

func (s *Server) GetOrganizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		claims := claimsFromContext(r.Context())
		if !canManageOrganization(claims, name) {
			writeError(w, serviceerrors.ErrForbidden)
			return
		}

		org, err := s.lifecycle.Get(r.Context(), name)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, org)
	}
}

func (s *Server) UpdateOrganizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		claims := claimsFromContext(r.Context())
		if !canManageOrganization(claims, name) {
			writeError(w, serviceerrors.ErrForbidden)
			return
		}

		var req updateOrganizationRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if err := s.lifecycle.Update(r.Context(), name, req.Email, req.Password); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) DeleteOrganizationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		claims := claimsFromContext(r.Context())

		if err := s.lifecycle.Delete(r.Context(), name, claims.Subject); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// canManageOrganization gates reads and updates at the HTTP layer; the
// lifecycle service re-checks rights on delete against the stored principal.
func canManageOrganization(claims *token.Claims, orgName string) bool {
	if claims == nil {
		return false
	}
	if claims.Role == "admin" {
		return true
	}
	return claims.Role == "org_admin" && claims.OrgName == orgName
}
