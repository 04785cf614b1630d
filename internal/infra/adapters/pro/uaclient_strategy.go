package pro

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/timdeluxe/subiquity/internal/domain"
	"github.com/timdeluxe/subiquity/internal/domain/model"
)

// message_code the ua client reports when the attach token is rejected.
const invalidTokenMessageCode = "attach-invalid-token"

const checkFailedMessage = "Unable to retrieve subscription information."

// runCommand executes argv and returns captured stdout plus the exit code.
// A non-nil error means the process could not be run at all. Swapped out
// in tests.
var runCommand = func(ctx context.Context, argv []string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, -1, err
	}
	return stdout.Bytes(), 0, nil
}

// UAClientStrategy queries subscription status by running the ua client
// executable and classifying its exit code and JSON output.
type UAClientStrategy struct {
	executable []string
	log        zerolog.Logger
}

// NewUAClientStrategy configures the strategy with the argv prefix of the
// ua client, so callers can prepend an interpreter to the script path.
func NewUAClientStrategy(executable []string, logger *zerolog.Logger) *UAClientStrategy {
	if len(executable) == 0 {
		executable = []string{"ubuntu-advantage"}
	}
	return &UAClientStrategy{
		executable: append([]string(nil), executable...),
		log:        logger.With().Str("component", "UAClientStrategy").Logger(),
	}
}

func (s *UAClientStrategy) QueryInfo(ctx context.Context, token string) (*model.SubscriptionStatus, error) {
	if token == "" {
		// The ua client does not produce the expected output for an empty
		// contract token, so it is never invoked for one.
		return nil, &domain.InvalidTokenError{Token: token}
	}

	argv := append(append([]string(nil), s.executable...),
		"status",
		"--format", "json",
		"--simulate-with-token", token,
	)

	// On failure the client exits with status 1 and still prints a JSON
	// object; its errors list tells us whether the token itself was bad.
	stdout, exitCode, err := runCommand(ctx, argv)
	if err != nil {
		s.log.Error().Err(err).Strs("command", argv).Msg("failed to execute ua client")
		return nil, &domain.CheckSubscriptionError{Token: token, Message: checkFailedMessage}
	}

	switch exitCode {
	case 0:
		var status model.SubscriptionStatus
		if err := json.Unmarshal(stdout, &status); err != nil {
			s.log.Error().Err(err).Strs("command", argv).Msg("failed to parse ua client output")
		} else {
			return &status, nil
		}
	case 1:
		var payload model.StatusErrors
		if err := json.Unmarshal(stdout, &payload); err != nil {
			s.log.Error().Err(err).Strs("command", argv).Msg("failed to parse ua client output")
		} else {
			tokenInvalid := false
			for _, e := range payload.Errors {
				if e.MessageCode == invalidTokenMessageCode {
					tokenInvalid = true
				}
				s.log.Debug().
					Str("message_code", e.MessageCode).
					Str("message", e.Message).
					Msg("error reported by ua client")
			}
			if tokenInvalid {
				return nil, &domain.InvalidTokenError{Token: token}
			}
		}
	default:
		s.log.Error().Int("exit_code", exitCode).Strs("command", argv).Msg("ua client exited with unexpected status")
	}

	return nil, &domain.CheckSubscriptionError{Token: token, Message: checkFailedMessage}
}
