package upstream

import (
	"context"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/logger"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/metrics"
)

// fallbackClient answers with a nil envelope when the upstream cannot be
// reached at all. The unwrapper then reports EmptyResponse. Upstream replies,
// including failure statuses, are passed through untouched.
type fallbackClient struct {
	next domain.EmployeeClient
}

// WithFallback decorates next with the degraded-response hook.
func WithFallback(next domain.EmployeeClient) domain.EmployeeClient {
	return &fallbackClient{next: next}
}

func (f *fallbackClient) FindAll(ctx context.Context) (*domain.Envelope[[]domain.Employee], error) {
	env, err := f.next.FindAll(ctx)
	return fallback(ctx, "find_all", env, err)
}

func (f *fallbackClient) Create(ctx context.Context, in domain.CreateEmployeeInput) (*domain.Envelope[domain.Employee], error) {
	env, err := f.next.Create(ctx, in)
	return fallback(ctx, "create", env, err)
}

func (f *fallbackClient) DeleteByName(ctx context.Context, req domain.DeleteRequest) (*domain.Envelope[bool], error) {
	env, err := f.next.DeleteByName(ctx, req)
	return fallback(ctx, "delete_by_name", env, err)
}

func (f *fallbackClient) FindByID(ctx context.Context, id string) (*domain.Envelope[domain.Employee], error) {
	env, err := f.next.FindByID(ctx, id)
	return fallback(ctx, "find_by_id", env, err)
}

func fallback[T any](ctx context.Context, op string, env *domain.Envelope[T], err error) (*domain.Envelope[T], error) {
	if err == nil || !IsTransport(err) || ctx.Err() != nil {
		return env, err
	}
	logger.WarnLog(ctx, "upstream %s unreachable, serving fallback: %v", op, err)
	metrics.RecordFallback(op)
	return nil, nil
}
