package handler

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/docker-crm/internal/errs"
	"github.com/deppfellow/docker-crm/internal/model"
	"github.com/deppfellow/docker-crm/internal/repository"
	"github.com/deppfellow/docker-crm/internal/server"
	"github.com/deppfellow/docker-crm/internal/service"
)

const (
	HomeMessage   = "Docker-Backend CRM is running"
	DockerMessage = "Docker Full Stack CRM Deployment Demo"
)

// CustomerHandler serves the /customerapi routes.
type CustomerHandler struct {
	Handler
	customerService *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:         NewHandler(s),
		customerService: customerService,
	}
}

// NoBodyRequest is used by endpoints that take no input.
type NoBodyRequest struct{}

func (r *NoBodyRequest) Validate() error {
	return nil
}

func (h *CustomerHandler) Home(c echo.Context, _ *NoBodyRequest) (string, error) {
	return HomeMessage, nil
}

func (h *CustomerHandler) Docker(c echo.Context, _ *NoBodyRequest) (string, error) {
	return DockerMessage, nil
}

func (h *CustomerHandler) AddCustomer(c echo.Context, req *model.AddCustomerRequest) (model.Customer, error) {
	return h.customerService.AddCustomer(c.Request().Context(), req.Customer())
}

func (h *CustomerHandler) GetAllCustomers(c echo.Context, _ *NoBodyRequest) ([]model.Customer, error) {
	return h.customerService.GetAllCustomers(c.Request().Context())
}

func (h *CustomerHandler) GetCustomerByID(c echo.Context, req *model.CustomerIDRequest) (model.Customer, error) {
	customer, found, err := h.customerService.GetCustomerByID(c.Request().Context(), req.ID)
	if err != nil {
		return model.Customer{}, err
	}
	if !found {
		return model.Customer{}, notFound(fmt.Sprintf("Customer with ID %d not found.", req.ID))
	}
	return customer, nil
}

// UpdateCustomer checks the id exists before replacing the record. A row
// deleted between the check and the write is reported the same way.
func (h *CustomerHandler) UpdateCustomer(c echo.Context, req *model.UpdateCustomerRequest) (model.Customer, error) {
	ctx := c.Request().Context()
	customer := req.Customer()
	missing := notFound(fmt.Sprintf("Cannot update. Customer with ID %d not found.", customer.ID))

	_, found, err := h.customerService.GetCustomerByID(ctx, customer.ID)
	if err != nil {
		return model.Customer{}, err
	}
	if !found {
		return model.Customer{}, missing
	}

	updated, err := h.customerService.UpdateCustomer(ctx, customer)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return model.Customer{}, missing
	}
	if err != nil {
		return model.Customer{}, err
	}
	return updated, nil
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context, req *model.CustomerIDRequest) (string, error) {
	ctx := c.Request().Context()

	_, found, err := h.customerService.GetCustomerByID(ctx, req.ID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", notFound(fmt.Sprintf("Cannot delete. Customer with ID %d not found.", req.ID))
	}

	if err := h.customerService.DeleteCustomerByID(ctx, req.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Customer with ID %d deleted successfully.", req.ID), nil
}

func (h *CustomerHandler) ExportCustomers(c echo.Context, _ *NoBodyRequest) ([]byte, error) {
	return h.customerService.ExportCustomers(c.Request().Context())
}

// notFound answers 404 with message as the whole text/plain body.
func notFound(message string) *errs.HTTPError {
	return errs.NewNotFoundError(message, true, nil).AsPlainText()
}
