// Package model holds the customer entity and the HTTP payloads built around it.
package model

import (
	"fmt"

	"github.com/deppfellow/docker-crm/internal/validation"
)

// Customer is a stored customer record.
//
// ID is assigned once by the storage layer on insert and never changes.
// Email and Phone are unique across all stored customers. The `validate`
// tags mirror the column definitions of the customers table.
type Customer struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name" validate:"required,max=50"`
	Email string  `json:"email" validate:"required,max=50"`
	Phone string  `json:"phone" validate:"required,max=20"`
	Notes *string `json:"notes" validate:"omitempty,max=200"`
}

// Validate checks the declared column constraints. Uniqueness is left to storage.
func (c Customer) Validate() error {
	return validation.Struct(c)
}

func (c Customer) String() string {
	notes := "null"
	if c.Notes != nil {
		notes = *c.Notes
	}
	return fmt.Sprintf("Customer [id=%d, name=%s, email=%s, phone=%s, notes=%s]",
		c.ID, c.Name, c.Email, c.Phone, notes)
}

// StringPtr returns a pointer to s, handy for Notes.
func StringPtr(s string) *string {
	return &s
}

// AddCustomerRequest is the body of POST /customerapi/add.
//
// A caller supplied ID is accepted and ignored.
type AddCustomerRequest struct {
	ID    *int64  `json:"id"`
	Name  string  `json:"name" validate:"required,max=50"`
	Email string  `json:"email" validate:"required,max=50"`
	Phone string  `json:"phone" validate:"required,max=20"`
	Notes *string `json:"notes" validate:"omitempty,max=200"`
}

func (r *AddCustomerRequest) Validate() error {
	return validation.Struct(r)
}

// Customer converts the payload into a new, unsaved record.
func (r *AddCustomerRequest) Customer() Customer {
	return Customer{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Notes: r.Notes,
	}
}

// UpdateCustomerRequest is the body of PUT /customerapi/update.
// Every mutable field is replaced, so the full record is expected.
type UpdateCustomerRequest struct {
	ID    *int64  `json:"id" validate:"required"`
	Name  string  `json:"name" validate:"required,max=50"`
	Email string  `json:"email" validate:"required,max=50"`
	Phone string  `json:"phone" validate:"required,max=20"`
	Notes *string `json:"notes" validate:"omitempty,max=200"`
}

func (r *UpdateCustomerRequest) Validate() error {
	return validation.Struct(r)
}

// Customer converts the payload into the record to store. Call after Validate.
func (r *UpdateCustomerRequest) Customer() Customer {
	var id int64
	if r.ID != nil {
		id = *r.ID
	}
	return Customer{
		ID:    id,
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Notes: r.Notes,
	}
}

// CustomerIDRequest binds the `:id` path parameter.
type CustomerIDRequest struct {
	ID int64 `param:"id"`
}

func (r *CustomerIDRequest) Validate() error {
	return nil
}
