package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names routed by the worker mux.
const (
	TaskWelcome        = "email:welcome"
	TaskReviewReceived = "email:review_received"
)

// WelcomeEmailPayload is the serialized data for a welcome email task.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// ReviewReceivedPayload is the serialized data for a review-received
// email task.
type ReviewReceivedPayload struct {
	To        string `json:"to"`
	EventName string `json:"event_name"`
}

// NewWelcomeEmailTask builds the task enqueued after signup: up to three
// retries, default queue, 30 second handler timeout.
func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:   to,
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewReviewReceivedTask builds the task enqueued after a review is
// submitted. Low queue: a thank-you note can wait behind everything else.
func NewReviewReceivedTask(to, eventName string) (*asynq.Task, error) {
	payload, err := json.Marshal(ReviewReceivedPayload{
		To:        to,
		EventName: eventName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReviewReceived,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
