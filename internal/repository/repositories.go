package repository

import (
	"github.com/deppfellow/docker-crm/internal/server"
)

// Repositories groups every repository the services depend on.
type Repositories struct {
	Customers CustomerRepository
}

// NewRepositories builds the PostgreSQL-backed repositories on the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Customers: NewPostgresCustomerRepository(s.DB.Pool),
	}
}

// NewMemoryRepositories builds repositories that keep state in process memory.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Customers: NewMemoryCustomerRepository(),
	}
}
