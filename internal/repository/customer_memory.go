package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/deppfellow/docker-crm/internal/model"
)

var _ CustomerRepository = (*MemoryCustomerRepository)(nil)

// MemoryCustomerRepository keeps customers in a map guarded by a mutex.
// Ids start at 1 and are never reused.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	nextID    int64
	customers map[int64]model.Customer
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		nextID:    1,
		customers: make(map[int64]model.Customer),
	}
}

func (r *MemoryCustomerRepository) AddCustomer(_ context.Context, c model.Customer) (model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkWrite(c, 0); err != nil {
		return model.Customer{}, err
	}

	c.ID = r.nextID
	r.nextID++
	r.customers[c.ID] = clone(c)

	return clone(c), nil
}

func (r *MemoryCustomerRepository) GetAllCustomers(_ context.Context) ([]model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customers = append(customers, clone(c))
	}

	slices.SortFunc(customers, func(a, b model.Customer) int {
		return int(a.ID - b.ID)
	})
	return customers, nil
}

func (r *MemoryCustomerRepository) GetCustomerByID(_ context.Context, id int64) (model.Customer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return model.Customer{}, false, nil
	}
	return clone(c), true, nil
}

func (r *MemoryCustomerRepository) UpdateCustomer(_ context.Context, c model.Customer) (model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[c.ID]; !ok {
		return model.Customer{}, ErrCustomerNotFound
	}

	if err := r.checkWrite(c, c.ID); err != nil {
		return model.Customer{}, err
	}

	r.customers[c.ID] = clone(c)
	return clone(c), nil
}

func (r *MemoryCustomerRepository) DeleteCustomerByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.customers, id)
	return nil
}

// checkWrite must be called with mu held.
func (r *MemoryCustomerRepository) checkWrite(c model.Customer, excludeID int64) error {
	if err := checkColumns(c); err != nil {
		return err
	}

	for id, existing := range r.customers {
		if id == excludeID {
			continue
		}
		if existing.Email == c.Email {
			return duplicateEmail()
		}
	}
	for id, existing := range r.customers {
		if id == excludeID {
			continue
		}
		if existing.Phone == c.Phone {
			return duplicatePhone()
		}
	}
	return nil
}

// clone copies Notes so stored records never share memory with callers.
func clone(c model.Customer) model.Customer {
	if c.Notes != nil {
		notes := *c.Notes
		c.Notes = &notes
	}
	return c
}
