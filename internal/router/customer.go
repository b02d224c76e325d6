package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/docker-crm/internal/handler"
	"github.com/deppfellow/docker-crm/internal/model"
	"github.com/deppfellow/docker-crm/internal/service"
)

const customerBasePath = "/customerapi"

func registerCustomerRoutes(r *echo.Echo, h *handler.Handlers) {
	ch := h.Customer
	g := r.Group(customerBasePath)

	home := handler.HandleText(ch.Handler, ch.Home, http.StatusOK, &handler.NoBodyRequest{})
	g.GET("", home)
	g.GET("/", home)
	g.GET("/docker", handler.HandleText(ch.Handler, ch.Docker, http.StatusOK, &handler.NoBodyRequest{}))

	g.POST("/add", handler.Handle(ch.Handler, ch.AddCustomer, http.StatusCreated, &model.AddCustomerRequest{}))
	g.GET("/all", handler.Handle(ch.Handler, ch.GetAllCustomers, http.StatusOK, &handler.NoBodyRequest{}))
	g.GET("/get/:id", handler.Handle(ch.Handler, ch.GetCustomerByID, http.StatusOK, &model.CustomerIDRequest{}))
	g.PUT("/update", handler.Handle(ch.Handler, ch.UpdateCustomer, http.StatusOK, &model.UpdateCustomerRequest{}))
	g.DELETE("/delete/:id", handler.HandleText(ch.Handler, ch.DeleteCustomer, http.StatusOK, &model.CustomerIDRequest{}))

	g.GET("/export", handler.HandleFile(
		ch.Handler,
		ch.ExportCustomers,
		http.StatusOK,
		&handler.NoBodyRequest{},
		service.ExportFilename,
		service.ExportContentType,
	))
}
