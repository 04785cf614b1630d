package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/timdeluxe/subiquity/internal/infra/logging"
	"github.com/timdeluxe/subiquity/internal/infra/metrics"
	"github.com/timdeluxe/subiquity/internal/usecase"
)

// StatusPoller periodically re-checks a configured contract token and
// reflects the result in metrics. It deliberately re-queries every tick
// instead of caching; API callers always get a fresh check.
type StatusPoller struct {
	interval time.Duration
	token    string
	subUC    *usecase.SubscriptionUseCase
	dev      bool
	log      zerolog.Logger
}

func NewStatusPoller(interval time.Duration, token string, subUC *usecase.SubscriptionUseCase, dev bool, logger *zerolog.Logger) *StatusPoller {
	return &StatusPoller{
		interval: interval,
		token:    token,
		subUC:    subUC,
		dev:      dev,
		log:      logger.With().Str("component", "StatusPoller").Logger(),
	}
}

func (p *StatusPoller) Run(ctx context.Context) error {
	p.log.Info().Dur("interval", p.interval).Msg("starting status poller")
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("stopping status poller")
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *StatusPoller) poll(ctx context.Context) {
	sub, err := p.subUC.GetSubscription(ctx, p.token)
	if err != nil {
		metrics.SetMonitorTokenValid(false)
		p.log.Warn().
			Err(err).
			Str("outcome", metrics.CheckOutcome(err)).
			Str("token", logging.RedactToken(p.token, p.dev)).
			Msg("monitored token did not resolve to a live subscription")
		return
	}
	metrics.SetMonitorTokenValid(true)
	p.log.Info().
		Str("contract", sub.ContractName).
		Int("activable_services", len(sub.Services)).
		Msg("monitored subscription is live")
}
