//go:build !integration

package apiv1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/timdeluxe/subiquity/internal/domain"
	"github.com/timdeluxe/subiquity/internal/domain/model"
	apiv1 "github.com/timdeluxe/subiquity/internal/infra/api/apiv1"
	"github.com/timdeluxe/subiquity/internal/usecase"
)

type stubStrategy struct {
	QueryFunc func(ctx context.Context, token string) (*model.SubscriptionStatus, error)
}

func (s *stubStrategy) QueryInfo(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
	return s.QueryFunc(ctx, token)
}

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func newRouter(strategy *stubStrategy, apiKey string) *chi.Mux {
	uc := usecase.NewSubscriptionUseCase(strategy, newLogger())
	r := chi.NewRouter()
	apiv1.NewServer(uc, apiKey, newLogger()).Register(r)
	return r
}

func checkReq(t *testing.T, r http.Handler, path, token string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"token": token})
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func validStatus() *model.SubscriptionStatus {
	return &model.SubscriptionStatus{
		Expires:  "2035-01-01T00:00:00Z",
		Account:  model.AccountInfo{Name: "user@example.com"},
		Contract: model.ContractInfo{Name: "UA Infra"},
		Services: []model.RawService{
			{Name: "esm-infra", Available: "yes", Entitled: "yes", AutoEnabled: "yes"},
			{Name: "fips", Available: "no", Entitled: "yes", AutoEnabled: "no"},
		},
	}
}

func TestCheckEndpoint(t *testing.T) {
	t.Run("returns the subscription for a live token", func(t *testing.T) {
		r := newRouter(&stubStrategy{
			QueryFunc: func(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
				return validStatus(), nil
			},
		}, "")

		rec := checkReq(t, r, "/api/v1/subscription/check", "C123", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var sub model.Subscription
		if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if sub.ContractToken != "C123" || len(sub.Services) != 1 {
			t.Errorf("unexpected subscription: %+v", sub)
		}
	})

	t.Run("maps InvalidTokenError to 400", func(t *testing.T) {
		r := newRouter(&stubStrategy{
			QueryFunc: func(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
				return nil, &domain.InvalidTokenError{Token: token}
			},
		}, "")

		rec := checkReq(t, r, "/api/v1/subscription/check", "iC123", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps ExpiredTokenError to 403 carrying the expiry", func(t *testing.T) {
		r := newRouter(&stubStrategy{
			QueryFunc: func(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
				status := validStatus()
				status.Expires = "2010-12-31T00:00:00Z"
				return status, nil
			},
		}, "")

		rec := checkReq(t, r, "/api/v1/subscription/check", "xC123", nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if body["expires"] != "2010-12-31T00:00:00Z" {
			t.Errorf("expected the expiry in the body, got %v", body)
		}
	})

	t.Run("maps CheckSubscriptionError to 502", func(t *testing.T) {
		r := newRouter(&stubStrategy{
			QueryFunc: func(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
				return nil, &domain.CheckSubscriptionError{Token: token, Message: "Unable to retrieve subscription information."}
			},
		}, "")

		rec := checkReq(t, r, "/api/v1/subscription/check", "fC123", nil)
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		r := newRouter(&stubStrategy{
			QueryFunc: func(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
				t.Fatal("strategy must not be reached")
				return nil, nil
			},
		}, "")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/subscription/check", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestStatusEndpoint(t *testing.T) {
	t.Run("passes the raw payload through without filtering", func(t *testing.T) {
		r := newRouter(&stubStrategy{
			QueryFunc: func(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
				return validStatus(), nil
			},
		}, "")

		rec := checkReq(t, r, "/api/v1/subscription/status", "C123", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var status model.SubscriptionStatus
		if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		// fips (unavailable) must survive on the raw path
		if len(status.Services) != 2 {
			t.Errorf("expected the unfiltered service list, got %+v", status.Services)
		}
	})
}

func TestAPIKeyGuard(t *testing.T) {
	strategy := &stubStrategy{
		QueryFunc: func(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
			return validStatus(), nil
		},
	}

	t.Run("missing header is unauthorized", func(t *testing.T) {
		r := newRouter(strategy, "secret")
		rec := checkReq(t, r, "/api/v1/subscription/check", "C123", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong key is forbidden", func(t *testing.T) {
		r := newRouter(strategy, "secret")
		rec := checkReq(t, r, "/api/v1/subscription/check", "C123", map[string]string{"Authorization": "Bearer nope"})
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("correct key passes", func(t *testing.T) {
		r := newRouter(strategy, "secret")
		rec := checkReq(t, r, "/api/v1/subscription/check", "C123", map[string]string{"Authorization": "Bearer secret"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("health stays open", func(t *testing.T) {
		r := newRouter(strategy, "secret")
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
