// File: internal/usecase/mocks_test.go
package usecase_test

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/timdeluxe/subiquity/internal/domain/model"
)

// stubStrategy is a hand-rolled strategy used by unit tests; tests set
// QueryFunc to shape the raw payload or error per case.
type stubStrategy struct {
	QueryFunc func(ctx context.Context, token string) (*model.SubscriptionStatus, error)
	calls     int
}

func (s *stubStrategy) QueryInfo(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
	s.calls++
	return s.QueryFunc(ctx, token)
}

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// statusWithExpiry builds a minimal raw payload around an expiry string.
func statusWithExpiry(expires string, services ...model.RawService) *model.SubscriptionStatus {
	return &model.SubscriptionStatus{
		Expires:  expires,
		Account:  model.AccountInfo{Name: "user@example.com"},
		Contract: model.ContractInfo{Name: "UA Infra - Essential (Virtual)"},
		Services: services,
	}
}
