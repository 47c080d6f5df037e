package usecase

import (
	"context"
	"time"

	"llm-telegram-relay/internal/metrics"
)

// complete performs exactly one backend call and records its outcome.
func (uc *implUseCase) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := uc.provider.Complete(ctx, prompt)
	metrics.RecordCompletion(uc.provider.Name(), err, time.Since(start))
	if err != nil {
		return "", err
	}

	uc.l.Debugf(ctx, "relay.usecase.complete: %s/%s answered in %s", uc.provider.Name(), uc.provider.Model(), time.Since(start))
	return reply, nil
}
