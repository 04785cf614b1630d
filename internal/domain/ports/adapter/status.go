// File: internal/domain/ports/adapter/status.go
package adapter

import (
	"context"

	"github.com/timdeluxe/subiquity/internal/domain/model"
)

// StatusQueryStrategy is the port for answering "what does this token
// entitle?". Implementations return the raw status payload or the most
// specific domain error they can determine.
type StatusQueryStrategy interface {
	QueryInfo(ctx context.Context, token string) (*model.SubscriptionStatus, error)
}
