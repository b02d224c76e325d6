package service

import (
	"github.com/deppfellow/docker-crm/internal/lib/job"
	"github.com/deppfellow/docker-crm/internal/repository"
	"github.com/deppfellow/docker-crm/internal/server"
)

// Services groups the business services handlers depend on.
type Services struct {
	Customer *CustomerService
	Health   *HealthService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	health, err := NewHealthService(s)
	if err != nil {
		return nil, err
	}

	return &Services{
		Customer: NewCustomerService(s, repos.Customers),
		Health:   health,
		Job:      s.Job,
	}, nil
}
