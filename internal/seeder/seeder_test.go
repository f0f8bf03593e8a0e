package seeder

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/validation"
)

// memoryClient is an in-process stand-in for the upstream service.
type memoryClient struct {
	mu        sync.Mutex
	employees []domain.Employee
	failNext  int
	deletes   []string
}

func (m *memoryClient) FindAll(ctx context.Context) (*domain.Envelope[[]domain.Employee], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Employee, len(m.employees))
	copy(out, m.employees)
	return domain.OK(out), nil
}

func (m *memoryClient) Create(ctx context.Context, in domain.CreateEmployeeInput) (*domain.Envelope[domain.Employee], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext > 0 {
		m.failNext--
		return &domain.Envelope[domain.Employee]{Status: "Too Many Requests"}, nil
	}
	e := domain.Employee{ID: uuid.New(), Name: in.Name, Salary: in.Salary, Age: in.Age, Title: in.Title, Email: "x@example.com"}
	m.employees = append(m.employees, e)
	return domain.OK(e), nil
}

func (m *memoryClient) DeleteByName(ctx context.Context, req domain.DeleteRequest) (*domain.Envelope[bool], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, req.Name)
	kept := m.employees[:0]
	found := false
	for _, e := range m.employees {
		if e.Name == req.Name {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	m.employees = kept
	return domain.OK(found), nil
}

func (m *memoryClient) FindByID(ctx context.Context, id string) (*domain.Envelope[domain.Employee], error) {
	return nil, errors.New("not used")
}

func TestRandomRequestIsValid(t *testing.T) {
	s := New(&memoryClient{}, 1, 0, 42)
	for i := 0; i < 500; i++ {
		req := s.RandomRequest()
		require.Nil(t, validation.Struct(req), "request %+v", req)
		assert.GreaterOrEqual(t, *req.Salary, 40000)
		assert.Less(t, *req.Salary, 160000)
		assert.GreaterOrEqual(t, *req.Age, 22)
		assert.Less(t, *req.Age, 65)
	}
}

func TestSeed(t *testing.T) {
	client := &memoryClient{}
	s := New(client, 4, 0, 1)

	created, res, err := s.Seed(context.Background(), 25)
	require.NoError(t, err)
	assert.Len(t, created, 25)
	assert.Equal(t, 25, res.Succeeded)
	assert.Zero(t, res.Failed)

	listed, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 25)
}

func TestSeedCountsFailures(t *testing.T) {
	client := &memoryClient{failNext: 3}
	s := New(client, 2, 0, 1)

	created, res, err := s.Seed(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, created, 7)
	assert.Equal(t, 7, res.Succeeded)
	assert.Equal(t, 3, res.Failed)
}

func TestSeedRetriesFailedCreate(t *testing.T) {
	client := &memoryClient{failNext: 1}
	s := New(client, 1, 1, 1)

	created, res, err := s.Seed(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Zero(t, res.Failed)
}

func TestClear(t *testing.T) {
	client := &memoryClient{employees: []domain.Employee{
		{ID: uuid.New(), Name: "John Doe"},
		{ID: uuid.New(), Name: "Jane Smith"},
		{ID: uuid.New(), Name: "John Doe"},
	}}
	s := New(client, 3, 0, 1)

	res, err := s.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.ElementsMatch(t, []string{"John Doe", "Jane Smith"}, client.deletes)
	assert.Empty(t, client.employees)
}
