package services

import (
	"context"
	"time"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/retry_utils"
)

type styleDirector struct {
	logger       outbound.LoggerPort
	styleDeriver outbound.StyleDeriverPort
	callTimeout  time.Duration
	maxAttempts  int
}

func NewStyleDirector(logger outbound.LoggerPort, styleDeriver outbound.StyleDeriverPort,
	callTimeout time.Duration, maxAttempts int) inbound.StyleDirectorPort {
	return &styleDirector{
		logger:       logger,
		styleDeriver: styleDeriver,
		callTimeout:  callTimeout,
		maxAttempts:  maxAttempts,
	}
}

// DeriveMasterStyle makes the one-time master style call. Failure is not a
// pipeline failure: the run degrades to per-page independent styling.
func (s *styleDirector) DeriveMasterStyle(ctx context.Context, prompt string, style string) string {
	descriptor, err := retry_utils.Do(ctx, s.logger, "style derivation", s.maxAttempts, func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		return s.styleDeriver.DeriveStyle(callCtx, prompt, style)
	})
	if err != nil {
		s.logger.WarnWithFields("Master style derivation failed, using per-page styling", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	return NormalizeWhitespace(descriptor)
}
