// Package seeder fills the upstream employee service with random valid
// employees and removes them again.
package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/logger"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/service"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/upstream"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/validation"
	"github.com/locvowork/employee_management_sample/employeeapi/pkg/dataflow"
)

var (
	firstNames = []string{"John", "Jane", "Michael", "Emily", "David", "Sarah", "Robert", "Jennifer", "William", "Elizabeth", "James", "Linda", "Richard", "Patricia"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis", "Garcia", "Rodriguez", "Wilson", "Martinez", "Anderson"}
	titles     = []string{"Software Engineer", "Senior Developer", "Team Lead", "Architect", "QA Engineer", "DevOps Engineer", "Product Manager"}
)

// Result summarises one seed or clear run.
type Result struct {
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

type Seeder struct {
	client  domain.EmployeeClient
	workers int
	retries int

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a seeder that runs up to workers upstream calls at once and
// retries each failed call retries times.
func New(client domain.EmployeeClient, workers, retries int, seed int64) *Seeder {
	if workers < 1 {
		workers = 1
	}
	return &Seeder{
		client:  client,
		workers: workers,
		retries: retries,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// RandomRequest builds one create request within the validated bounds.
func (s *Seeder) RandomRequest() domain.EmployeeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	salary := 40000 + s.rng.Intn(120000)
	age := 22 + s.rng.Intn(43)
	return domain.EmployeeRequest{
		Name:   firstNames[s.rng.Intn(len(firstNames))] + " " + lastNames[s.rng.Intn(len(lastNames))],
		Salary: &salary,
		Age:    &age,
		Title:  titles[s.rng.Intn(len(titles))],
	}
}

// Seed creates count random employees and returns the ones the upstream accepted.
func (s *Seeder) Seed(ctx context.Context, count int) ([]domain.Employee, Result, error) {
	start := time.Now()
	reqs := make([]domain.EmployeeRequest, 0, count)
	for i := 0; i < count; i++ {
		req := s.RandomRequest()
		if v := validation.Struct(req); v != nil {
			return nil, Result{}, fmt.Errorf("generated invalid employee: %w", v)
		}
		reqs = append(reqs, req)
	}

	var failed int32
	created := dataflow.Map(ctx, dataflow.From(ctx, reqs...), func(req domain.EmployeeRequest) (domain.Employee, error) {
		env, err := s.client.Create(ctx, service.DefaultTransformer(req))
		if err != nil {
			return domain.Employee{}, err
		}
		return upstream.Unwrap(env)
	}, s.options(&failed)...)

	employees, err := dataflow.Collect(ctx, created)
	res := Result{Succeeded: len(employees), Failed: int(failed), Elapsed: time.Since(start)}
	logger.InfoLog(ctx, "Seeded %d employees (%d failed) in %s", res.Succeeded, res.Failed, res.Elapsed)
	return employees, res, err
}

// List returns every employee currently held upstream.
func (s *Seeder) List(ctx context.Context) ([]domain.Employee, error) {
	env, err := s.client.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return upstream.Unwrap(env)
}

// Clear deletes every listed employee by name.
func (s *Seeder) Clear(ctx context.Context) (Result, error) {
	start := time.Now()
	employees, err := s.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list employees: %w", err)
	}

	// the upstream deletes by name, so each name is sent once; Filter runs a
	// single worker, which keeps seen unshared
	seen := make(map[string]bool, len(employees))
	unique := dataflow.Filter(ctx, dataflow.From(ctx, employees...), func(e domain.Employee) bool {
		if seen[e.Name] {
			return false
		}
		seen[e.Name] = true
		return true
	})

	var deleted, failed int32
	err = dataflow.ForEach(ctx, unique, func(e domain.Employee) error {
		name := e.Name
		env, err := s.client.DeleteByName(ctx, domain.DeleteRequest{Name: name})
		if err != nil {
			return err
		}
		ok, err := upstream.Unwrap(env)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("upstream refused to delete %q", name)
		}
		atomic.AddInt32(&deleted, 1)
		return nil
	}, s.options(&failed)...)

	res := Result{Succeeded: int(deleted), Failed: int(failed), Elapsed: time.Since(start)}
	logger.InfoLog(ctx, "Deleted %d employee names (%d failed) in %s", res.Succeeded, res.Failed, res.Elapsed)
	return res, err
}

func (s *Seeder) options(failed *int32) []dataflow.Option {
	return []dataflow.Option{
		dataflow.WithWorkers(s.workers),
		dataflow.WithRetry(s.retries, dataflow.ExponentialBackoff(200*time.Millisecond, 5*time.Second)),
		dataflow.WithErrorHandler(func(err error) bool {
			atomic.AddInt32(failed, 1)
			logger.WarnLog(context.Background(), "Seeder call failed: %v", err)
			return true
		}),
	}
}
