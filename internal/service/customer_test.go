package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/deppfellow/docker-crm/internal/config"
	"github.com/deppfellow/docker-crm/internal/errs"
	"github.com/deppfellow/docker-crm/internal/lib/job"
	"github.com/deppfellow/docker-crm/internal/model"
	"github.com/deppfellow/docker-crm/internal/repository"
	"github.com/deppfellow/docker-crm/internal/server"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func newTestCustomerService() (*CustomerService, *fakeEnqueuer) {
	svc := NewCustomerService(newTestServer(), repository.NewMemoryCustomerRepository())
	jobs := &fakeEnqueuer{}
	svc.jobs = jobs
	return svc, jobs
}

func ann() model.Customer {
	return model.Customer{Name: "Ann", Email: "ann@x.com", Phone: "555-1", Notes: model.StringPtr("vip")}
}

func TestAddCustomerEnqueuesWelcome(t *testing.T) {
	svc, jobs := newTestCustomerService()

	created, err := svc.AddCustomer(context.Background(), ann())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	require.Len(t, jobs.tasks, 1)
	assert.Equal(t, job.TaskCustomerWelcome, jobs.tasks[0].Type())

	var payload job.CustomerWelcomePayload
	require.NoError(t, json.Unmarshal(jobs.tasks[0].Payload(), &payload))
	assert.Equal(t, job.CustomerWelcomePayload{CustomerID: 1, To: "ann@x.com", Name: "Ann"}, payload)
}

func TestAddCustomerSucceedsWhenEnqueueFails(t *testing.T) {
	svc, jobs := newTestCustomerService()
	jobs.err = errors.New("redis down")

	created, err := svc.AddCustomer(context.Background(), ann())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestAddCustomerWithoutJobsConfigured(t *testing.T) {
	svc := NewCustomerService(newTestServer(), repository.NewMemoryCustomerRepository())
	assert.Nil(t, svc.jobs)

	_, err := svc.AddCustomer(context.Background(), ann())
	require.NoError(t, err)
}

func TestAddCustomerDuplicateBecomesConflict(t *testing.T) {
	svc, jobs := newTestCustomerService()
	ctx := context.Background()

	_, err := svc.AddCustomer(ctx, ann())
	require.NoError(t, err)

	_, err = svc.AddCustomer(ctx, ann())

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "CUSTOMER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Customer with this Email already exists", httpErr.Message)
	assert.Len(t, jobs.tasks, 1)
}

func TestUpdateCustomer(t *testing.T) {
	svc, _ := newTestCustomerService()
	ctx := context.Background()

	created, err := svc.AddCustomer(ctx, ann())
	require.NoError(t, err)

	created.Phone = "555-9"
	updated, err := svc.UpdateCustomer(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "555-9", updated.Phone)

	created.ID = 77
	_, err = svc.UpdateCustomer(ctx, created)
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)

	invalid := updated
	invalid.Name = strings.Repeat("n", 51)
	_, err = svc.UpdateCustomer(ctx, invalid)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestGetAndDeleteCustomer(t *testing.T) {
	svc, _ := newTestCustomerService()
	ctx := context.Background()

	created, err := svc.AddCustomer(ctx, ann())
	require.NoError(t, err)

	got, found, err := svc.GetCustomerByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, got)

	require.NoError(t, svc.DeleteCustomerByID(ctx, created.ID))

	_, found, err = svc.GetCustomerByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)

	all, err := svc.GetAllCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExportCustomers(t *testing.T) {
	svc, _ := newTestCustomerService()
	ctx := context.Background()

	_, err := svc.AddCustomer(ctx, ann())
	require.NoError(t, err)
	_, err = svc.AddCustomer(ctx, model.Customer{Name: "Bob", Email: "bob@x.com", Phone: "555-2"})
	require.NoError(t, err)

	data, err := svc.ExportCustomers(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Email", "Phone", "Notes"}, rows[0])
	assert.Equal(t, []string{"1", "Ann", "ann@x.com", "555-1", "vip"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 4)
	assert.Equal(t, []string{"2", "Bob", "bob@x.com", "555-2"}, rows[2][:4])
}
