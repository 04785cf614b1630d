// Demo of the simulated strategy: walks one token of each outcome class
// through the subscription interface.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/timdeluxe/subiquity/internal/domain"
	"github.com/timdeluxe/subiquity/internal/infra/adapters/pro"
	"github.com/timdeluxe/subiquity/internal/usecase"
)

func main() {
	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(out).With().Timestamp().Logger()

	// scale factor 10 -> 100ms simulated latency per query
	strategy := pro.NewMockStrategy(10, &logger)
	subUC := usecase.NewSubscriptionUseCase(strategy, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tokens := []string{
		"C123456789",  // valid
		"xC123456789", // expired
		"iC123456789", // invalid
		"fC123456789", // internal failure
		"",            // always invalid
	}

	for _, token := range tokens {
		fmt.Printf("token %q:\n", token)
		sub, err := subUC.GetSubscription(ctx, token)
		if err != nil {
			var invalid *domain.InvalidTokenError
			var expired *domain.ExpiredTokenError
			var check *domain.CheckSubscriptionError
			switch {
			case errors.As(err, &invalid):
				fmt.Println("  -> token is invalid, please use a different one")
			case errors.As(err, &expired):
				fmt.Printf("  -> token expired on %s\n", expired.Expires)
			case errors.As(err, &check):
				fmt.Printf("  -> %s\n", check.Error())
			default:
				fmt.Printf("  -> unexpected error: %v\n", err)
			}
			continue
		}
		fmt.Printf("  account:  %s\n", sub.AccountName)
		fmt.Printf("  contract: %s\n", sub.ContractName)
		for _, svc := range sub.Services {
			fmt.Printf("  service:  %-10s auto_enabled=%v (%s)\n", svc.Name, svc.AutoEnabled, svc.Description)
		}
	}
}
