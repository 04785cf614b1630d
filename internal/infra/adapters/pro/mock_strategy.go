// Package pro holds the strategies that answer subscription-status
// queries for an Ubuntu Pro contract token.
package pro

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/timdeluxe/subiquity/internal/domain"
	"github.com/timdeluxe/subiquity/internal/domain/model"
)

//go:embed fixtures
var fixturesFS embed.FS

// MockStrategy simulates the ua client without spawning it. The outcome
// is derived from the first character of the token:
//   - empty token        -> InvalidTokenError
//   - "x..."             -> expired fixture payload
//   - "i..."             -> InvalidTokenError
//   - "f..."             -> CheckSubscriptionError
//   - anything else      -> valid fixture payload
//
// Each query sleeps 1s/scaleFactor to mimic the latency of a real check.
type MockStrategy struct {
	scaleFactor int
	log         zerolog.Logger
}

func NewMockStrategy(scaleFactor int, logger *zerolog.Logger) *MockStrategy {
	if scaleFactor <= 0 {
		scaleFactor = 1
	}
	return &MockStrategy{
		scaleFactor: scaleFactor,
		log:         logger.With().Str("component", "MockStrategy").Logger(),
	}
}

func (s *MockStrategy) QueryInfo(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Second / time.Duration(s.scaleFactor)):
	}

	if token == "" {
		return nil, &domain.InvalidTokenError{Token: token}
	}

	var name string
	switch token[0] {
	case 'x':
		name = "fixtures/status-expired.json"
	case 'i':
		return nil, &domain.InvalidTokenError{Token: token}
	case 'f':
		return nil, &domain.CheckSubscriptionError{Token: token}
	default:
		name = "fixtures/status-valid.json"
	}

	s.log.Debug().Str("fixture", name).Msg("serving canned subscription status")
	data, err := fs.ReadFile(fixturesFS, name)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	var status model.SubscriptionStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return &status, nil
}
