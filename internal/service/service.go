// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated payloads from handlers, calls the repositories and
// translates storage failures into client-facing errors.
package service

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/docker-crm/internal/sqlerr"
)

// TaskEnqueuer is the part of asynq.Client the services use.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// storageError turns constraint violations into their HTTP shape and leaves
// every other error for the global error handler.
func storageError(err error) error {
	if sqlerr.IsConstraintViolation(err) {
		return sqlerr.HandleError(err)
	}
	return err
}
