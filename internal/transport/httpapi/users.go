package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type registerRequest struct {
	FirstName string   `json:"first_name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Allergies []string `json:"allergies"`
}

type userResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	Email     string   `json:"email"`
	Allergies []string `json:"allergies"`
}

// handleRegister handles POST /register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "email and password are required")
		return
	}

	u, err := s.users.Register(r.Context(), req.FirstName, req.Email, req.Password, req.Allergies)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		Email:     u.Email,
		Allergies: u.Allergies,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleLogin handles POST /login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	token, _, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
