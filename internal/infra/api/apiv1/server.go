package apiv1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/timdeluxe/subiquity/internal/domain"
	"github.com/timdeluxe/subiquity/internal/usecase"
)

// Server exposes the subscription check over HTTP.
type Server struct {
	subUC  *usecase.SubscriptionUseCase
	apiKey string
	log    zerolog.Logger
}

func NewServer(subUC *usecase.SubscriptionUseCase, apiKey string, logger *zerolog.Logger) *Server {
	return &Server{
		subUC:  subUC,
		apiKey: apiKey,
		log:    logger.With().Str("component", "apiv1").Logger(),
	}
}

// Register mounts the v1 routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Route("/api/v1/subscription", func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Post("/check", s.handleCheck)
		r.Post("/status", s.handleStatus)
	})
}

// requireAPIKey provides simple Bearer authentication; an empty configured
// key disables the guard (dev setups).
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}
		if parts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type checkRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	sub, err := s.subUC.GetSubscription(r.Context(), req.Token)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	status, err := s.subUC.GetSubscriptionStatus(r.Context(), req.Token)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var invalid *domain.InvalidTokenError
	var expired *domain.ExpiredTokenError
	var check *domain.CheckSubscriptionError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_token"})
	case errors.As(err, &expired):
		writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "token_expired",
			"expires": expired.Expires,
		})
	case errors.As(err, &check):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "check_failed",
			"message": check.Error(),
		})
	default:
		s.log.Error().Err(err).Msg("unexpected error from subscription check")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
