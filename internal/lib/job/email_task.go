package job

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

// TaskCustomerWelcome greets a customer right after registration.
const TaskCustomerWelcome = "customer:welcome"

// CustomerWelcomePayload is the JSON payload stored in Redis.
type CustomerWelcomePayload struct {
	CustomerID int64  `json:"customer_id"`
	To         string `json:"to"`
	Name       string `json:"name"`
}

// NewCustomerWelcomeTask builds the welcome task: 3 retries, default queue,
// 30 second timeout.
func NewCustomerWelcomeTask(customerID int64, to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(CustomerWelcomePayload{
		CustomerID: customerID,
		To:         to,
		Name:       name,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal welcome payload: %w", err)
	}

	return asynq.NewTask(
		TaskCustomerWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
