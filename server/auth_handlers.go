package server

import "net/http"

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}

		session, err := s.sessions.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

// RefreshHandler reissues an access token. The principal comes from the
// bearer token's claims; the refresh token itself travels in the body.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, err)
			return
		}

		claims := claimsFromContext(r.Context())
		result, err := s.sessions.Refresh(r.Context(), claims.Subject, req.RefreshToken)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
