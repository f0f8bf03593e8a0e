package upstream

import (
	"context"
	"time"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/logger"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/metrics"
)

type instrumentedClient struct {
	next domain.EmployeeClient
}

// Instrument records latency and outcome of every call made through next.
func Instrument(next domain.EmployeeClient) domain.EmployeeClient {
	return &instrumentedClient{next: next}
}

func (c *instrumentedClient) FindAll(ctx context.Context) (*domain.Envelope[[]domain.Employee], error) {
	start := time.Now()
	env, err := c.next.FindAll(ctx)
	observe(ctx, "find_all", start, env, err)
	return env, err
}

func (c *instrumentedClient) Create(ctx context.Context, in domain.CreateEmployeeInput) (*domain.Envelope[domain.Employee], error) {
	start := time.Now()
	env, err := c.next.Create(ctx, in)
	observe(ctx, "create", start, env, err)
	return env, err
}

func (c *instrumentedClient) DeleteByName(ctx context.Context, req domain.DeleteRequest) (*domain.Envelope[bool], error) {
	start := time.Now()
	env, err := c.next.DeleteByName(ctx, req)
	observe(ctx, "delete_by_name", start, env, err)
	return env, err
}

func (c *instrumentedClient) FindByID(ctx context.Context, id string) (*domain.Envelope[domain.Employee], error) {
	start := time.Now()
	env, err := c.next.FindByID(ctx, id)
	observe(ctx, "find_by_id", start, env, err)
	return env, err
}

func observe[T any](ctx context.Context, op string, start time.Time, env *domain.Envelope[T], err error) {
	d := time.Since(start)
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case env == nil:
		outcome = "empty"
	case !env.Succeeded():
		outcome = "failed_status"
	}
	metrics.ObserveUpstream(op, outcome, d)
	logger.DebugLog(ctx, "upstream %s finished outcome=%s in %v", op, outcome, d)
}
