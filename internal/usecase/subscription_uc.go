// File: internal/usecase/subscription_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/timdeluxe/subiquity/internal/domain"
	"github.com/timdeluxe/subiquity/internal/domain/model"
	"github.com/timdeluxe/subiquity/internal/domain/ports/adapter"
	"github.com/timdeluxe/subiquity/internal/infra/metrics"
)

// SubscriptionUseCase is the interface layer over a query strategy: it
// fetches raw status, enforces the expiry check and reduces the service
// list to the activable ones. It keeps no state across calls beyond the
// strategy reference set at construction.
type SubscriptionUseCase struct {
	strategy adapter.StatusQueryStrategy
	log      zerolog.Logger
}

func NewSubscriptionUseCase(strategy adapter.StatusQueryStrategy, logger *zerolog.Logger) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		strategy: strategy,
		log:      logger.With().Str("component", "SubscriptionUseCase").Logger(),
	}
}

// GetSubscriptionStatus returns the raw status payload for the token,
// untransformed. Strategy errors propagate as-is.
func (uc *SubscriptionUseCase) GetSubscriptionStatus(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
	return uc.strategy.QueryInfo(ctx, token)
}

// GetSubscription returns the account name, contract name and list of
// activable services for the token, or fails with ExpiredTokenError when
// the contract expiry is not strictly in the future.
func (uc *SubscriptionUseCase) GetSubscription(ctx context.Context, token string) (*model.Subscription, error) {
	start := time.Now()
	sub, err := uc.getSubscription(ctx, token)
	metrics.ObserveStatusCheck(metrics.CheckOutcome(err), time.Since(start).Seconds())
	if err == nil {
		metrics.SetActivableServices(len(sub.Services))
	}
	return sub, err
}

func (uc *SubscriptionUseCase) getSubscription(ctx context.Context, token string) (*model.Subscription, error) {
	info, err := uc.GetSubscriptionStatus(ctx, token)
	if err != nil {
		return nil, err
	}

	// The ua client reports a zero UTC offset either as "+00:00" or as the
	// RFC 3339 "Z" shorthand; time.RFC3339 accepts both spellings.
	expires, err := time.Parse(time.RFC3339, info.Expires)
	if err != nil {
		uc.log.Error().Err(err).Str("expires", info.Expires).Msg("unparsable expiration in status payload")
		return nil, &domain.CheckSubscriptionError{Token: token, Message: "Unable to retrieve subscription information."}
	}
	if !expires.After(time.Now()) {
		return nil, &domain.ExpiredTokenError{Token: token, Expires: info.Expires}
	}

	services := make([]model.Service, 0, len(info.Services))
	for _, svc := range info.Services {
		if !svc.Activable() {
			continue
		}
		services = append(services, model.ServiceFromRaw(svc))
	}

	return &model.Subscription{
		AccountName:   info.Account.Name,
		ContractName:  info.Contract.Name,
		ContractToken: token,
		Services:      services,
	}, nil
}
