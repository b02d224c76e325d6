package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/docker-crm/internal/lib/job"
	"github.com/deppfellow/docker-crm/internal/model"
	"github.com/deppfellow/docker-crm/internal/repository"
	"github.com/deppfellow/docker-crm/internal/server"
)

// CustomerService runs customer operations against a CustomerRepository.
type CustomerService struct {
	server *server.Server
	repo   repository.CustomerRepository
	jobs   TaskEnqueuer
}

// NewCustomerService wires the service to repo. Welcome notifications are
// enqueued only when the server runs a job service.
func NewCustomerService(s *server.Server, repo repository.CustomerRepository) *CustomerService {
	svc := &CustomerService{
		server: s,
		repo:   repo,
	}
	if s.Job != nil {
		svc.jobs = s.Job.Client
	}
	return svc
}

func (s *CustomerService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.server.Logger
}

// AddCustomer stores c under a fresh id and schedules the welcome email.
func (s *CustomerService) AddCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	created, err := s.repo.AddCustomer(ctx, c)
	if err != nil {
		return model.Customer{}, storageError(err)
	}

	log := s.logger(ctx)
	log.Info().Int64("customer_id", created.ID).Msg("customer created")

	s.enqueueWelcome(ctx, created)

	return created, nil
}

func (s *CustomerService) enqueueWelcome(ctx context.Context, c model.Customer) {
	if s.jobs == nil {
		return
	}

	log := s.logger(ctx)

	task, err := job.NewCustomerWelcomeTask(c.ID, c.Email, c.Name)
	if err != nil {
		log.Error().Err(err).Int64("customer_id", c.ID).Msg("failed to build welcome task")
		return
	}

	if _, err := s.jobs.EnqueueContext(ctx, task); err != nil {
		log.Error().Err(err).Int64("customer_id", c.ID).Msg("failed to enqueue welcome task")
	}
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.repo.GetAllCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomerByID reports found=false when no customer has id.
func (s *CustomerService) GetCustomerByID(ctx context.Context, id int64) (model.Customer, bool, error) {
	return s.repo.GetCustomerByID(ctx, id)
}

// UpdateCustomer replaces the stored customer c.ID.
// It returns repository.ErrCustomerNotFound when the id is not stored.
func (s *CustomerService) UpdateCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	updated, err := s.repo.UpdateCustomer(ctx, c)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return model.Customer{}, err
	}
	if err != nil {
		return model.Customer{}, storageError(err)
	}

	log := s.logger(ctx)
	log.Info().Int64("customer_id", updated.ID).Msg("customer updated")

	return updated, nil
}

func (s *CustomerService) DeleteCustomerByID(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCustomerByID(ctx, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}

	log := s.logger(ctx)
	log.Info().Int64("customer_id", id).Msg("customer deleted")
	return nil
}
