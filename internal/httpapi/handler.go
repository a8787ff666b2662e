package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"content_mirror/internal/domain"
	"content_mirror/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"kinds":  s.queries.Kinds(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	q := service.Query{
		Category:     params.Get("category"),
		Search:       params.Get("search"),
		Page:         atoiOr(params.Get("page"), 1),
		PageSize:     atoiOr(params.Get("page_size"), service.DefaultPageSize),
		ForceRefresh: params.Get("refresh") == "true" || params.Get("refresh") == "1",
	}

	page, err := s.queries.List(r.Context(), kind, q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetBySlug(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}

	item, err := s.queries.GetBySlug(r.Context(), kind, r.PathValue("slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

func (s *Server) handleGetByID(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}

	item, err := s.queries.GetByID(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}

	if err := s.queries.Clear(r.Context(), kind); err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"cleared": kind})
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}

	n, err := s.queries.Count(r.Context(), kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"kind": kind, "count": n})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}

	hours := atoiOr(r.URL.Query().Get("hours"), 24)
	if hours <= 0 {
		respondWithError(w, http.StatusBadRequest, "hours must be positive")
		return
	}

	items, err := s.queries.RecentSince(r.Context(), kind, hours)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"kind": kind, "hours": hours, "items": items})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken == "" && s.cfg.AdminTokenHash == "" {
			next.ServeHTTP(w, r)
			return
		}
		token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || !s.validAdminToken(token) {
			respondWithError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validAdminToken prefers the bcrypt hash when one is configured.
func (s *Server) validAdminToken(token string) bool {
	if s.cfg.AdminTokenHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminTokenHash), []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) == 1
}

func (s *Server) kind(w http.ResponseWriter, r *http.Request) (domain.Kind, bool) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "not found")
		return "", false
	}
	return kind, true
}

// fail maps domain errors to a status code. Details stay in the log.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownKind):
		respondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrProviderUnavailable):
		s.logger.Warn("content unavailable", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusServiceUnavailable, "content temporarily unavailable")
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
