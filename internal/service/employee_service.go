package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/apperr"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/logger"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/upstream"
)

// EmployeeService exposes the employee operations served over HTTP.
// Every call reads fresh data from the upstream service.
type EmployeeService interface {
	// List returns every employee. A single incomplete record fails the
	// whole call with a remote error.
	List(ctx context.Context) ([]domain.Employee, error)
	SearchByName(ctx context.Context, q string) ([]domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	HighestSalary(ctx context.Context) (int, error)
	TopTenHighestEarning(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req domain.EmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id string) (string, error)
}

type employeeService struct {
	client      domain.EmployeeClient
	transformer RequestTransformer
}

// NewEmployeeService creates the service. A nil transformer selects DefaultTransformer.
func NewEmployeeService(client domain.EmployeeClient, transformer RequestTransformer) EmployeeService {
	if transformer == nil {
		transformer = DefaultTransformer
	}
	return &employeeService{client: client, transformer: transformer}
}

const (
	msgInvalidID       = "Employee ID cannot be null or empty"
	msgRemoteDown      = "Remote service unavailable"
	msgRetrieveFailed  = "Error retrieving employee"
	msgIncompleteEntry = "Remote service returned an incomplete employee record"
)

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	env, err := s.client.FindAll(ctx)
	if err != nil {
		return nil, remoteErr(err, msgRemoteDown)
	}
	employees, err := upstream.Unwrap(env)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if !e.Complete() {
			return nil, apperr.Remote(msgIncompleteEntry).WithContextKV("id", e.ID.String())
		}
	}
	return employees, nil
}

func (s *employeeService) SearchByName(ctx context.Context, q string) ([]domain.Employee, error) {
	employees, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByName(employees, q), nil
}

func (s *employeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	env, err := s.client.FindByID(ctx, id)
	if err != nil {
		return nil, remoteErr(err, msgRetrieveFailed)
	}
	if env != nil && env.Data == nil {
		return nil, notFound(id)
	}

	emp, err := upstream.Unwrap(env)
	if err != nil {
		// the payload can only vanish here if the envelope changed under us
		if errors.Is(err, apperr.ErrEmptyPayload) {
			return nil, notFound(id)
		}
		return nil, err
	}
	if !emp.Complete() {
		return nil, apperr.Remote(msgIncompleteEntry).WithContextKV("id", id)
	}
	return &emp, nil
}

func (s *employeeService) HighestSalary(ctx context.Context) (int, error) {
	employees, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return MaxSalary(employees), nil
}

func (s *employeeService) TopTenHighestEarning(ctx context.Context) ([]string, error) {
	employees, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return TopEarnerNames(employees, TopEarnersLimit), nil
}

// Create expects req to have passed validation at the HTTP boundary.
func (s *employeeService) Create(ctx context.Context, req domain.EmployeeRequest) (*domain.Employee, error) {
	env, err := s.client.Create(ctx, s.transformer(req))
	if err != nil {
		return nil, remoteErr(err, msgRemoteDown)
	}
	emp, err := upstream.Unwrap(env)
	if err != nil {
		return nil, err
	}
	if !emp.Complete() {
		return nil, apperr.Remote(msgIncompleteEntry)
	}
	logger.InfoLog(ctx, "Created employee %s", emp.ID)
	return &emp, nil
}

// Delete looks the employee up by id and deletes it by name, since the
// upstream has no delete-by-id. It returns the deleted employee's name.
func (s *employeeService) Delete(ctx context.Context, id string) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}

	env, err := s.client.FindByID(ctx, id)
	if err != nil {
		return "", remoteErr(err, msgRetrieveFailed)
	}
	if env != nil && env.Data == nil {
		return "", notFound(id)
	}
	emp, err := upstream.Unwrap(env)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(emp.Name) == "" {
		return "", apperr.Remote(msgIncompleteEntry).WithContextKV("id", id)
	}

	delEnv, err := s.client.DeleteByName(ctx, domain.DeleteRequest{Name: emp.Name})
	if err != nil {
		return "", remoteErr(err, msgRemoteDown)
	}
	deleted, err := upstream.Unwrap(delEnv)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", apperr.Remote(fmt.Sprintf("Failed to delete employee with ID: %s", id))
	}

	logger.InfoLog(ctx, "Deleted employee %s (%s)", id, emp.Name)
	return emp.Name, nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.InvalidArgument(msgInvalidID)
	}
	return nil
}

func notFound(id string) error {
	return apperr.NotFound("Employee", "ID", id)
}

// remoteErr keeps classified errors and wraps anything else as a RemoteError.
func remoteErr(err error, msg string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.RemoteWrap(err, msg)
}
