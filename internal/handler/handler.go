// Package handler is the HTTP layer between the router and the services.
//
// Every typed endpoint runs through the same pipeline (see Handle): bind
// and validate the request, call a service, write the result. Errors are
// returned untouched and rendered by the global error handler.
package handler
