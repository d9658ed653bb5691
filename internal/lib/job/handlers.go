package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask delivers the post-signup welcome email.
// Returning an error makes Asynq mark the task failed and schedule a
// retry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("processing welcome email task")

	if err := j.emailClient.SendWelcomeEmail(p.To, p.Name); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("failed to send welcome email")
		return err
	}

	return nil
}

// handleReviewReceivedTask delivers the review thank-you email.
func (j *JobService) handleReviewReceivedTask(ctx context.Context, t *asynq.Task) error {
	var p ReviewReceivedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal review received payload: %w", err)
	}

	j.logger.Info().
		Str("type", "review_received").
		Str("to", p.To).
		Msg("processing review received email task")

	if err := j.emailClient.SendReviewReceivedEmail(p.To, p.EventName); err != nil {
		j.logger.Error().
			Str("type", "review_received").
			Str("to", p.To).
			Err(err).
			Msg("failed to send review received email")
		return err
	}

	return nil
}
