package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJobService() *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger}
}

func TestNewCustomerWelcomeTask(t *testing.T) {
	task, err := NewCustomerWelcomeTask(7, "ann@x.com", "Ann")
	require.NoError(t, err)

	assert.Equal(t, TaskCustomerWelcome, task.Type())

	var p CustomerWelcomePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, CustomerWelcomePayload{CustomerID: 7, To: "ann@x.com", Name: "Ann"}, p)
}

func TestWelcomeTaskSkippedWithoutEmailClient(t *testing.T) {
	task, err := NewCustomerWelcomeTask(1, "ann@x.com", "Ann")
	require.NoError(t, err)

	assert.NoError(t, newTestJobService().handleCustomerWelcomeTask(context.Background(), task))
}

func TestWelcomeTaskRejectsBadPayload(t *testing.T) {
	task := asynq.NewTask(TaskCustomerWelcome, []byte("{not json"))

	err := newTestJobService().handleCustomerWelcomeTask(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestMuxRoutesWelcomeTask(t *testing.T) {
	task, err := NewCustomerWelcomeTask(1, "ann@x.com", "Ann")
	require.NoError(t, err)

	mux := newTestJobService().Mux()
	assert.NoError(t, mux.ProcessTask(context.Background(), task))
}
