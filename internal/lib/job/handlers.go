package job

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

func (j *JobService) handleCustomerWelcomeTask(ctx context.Context, t *asynq.Task) error {
	var p CustomerWelcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Malformed payloads never succeed, don't retry them.
		return fmt.Errorf("unmarshal welcome payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskCustomerWelcome).
		Int64("customer_id", p.CustomerID).
		Logger()

	if j.emailClient == nil {
		log.Debug().Msg("email disabled, skipping welcome task")
		return nil
	}

	log.Info().Msg("processing welcome email task")

	if err := j.emailClient.SendCustomerWelcomeEmail(ctx, p.To, p.Name); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}
