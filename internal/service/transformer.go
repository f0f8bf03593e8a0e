package service

import "github.com/locvowork/employee_management_sample/employeeapi/internal/domain"

// RequestTransformer maps a validated create request to the upstream create body.
type RequestTransformer func(domain.EmployeeRequest) domain.CreateEmployeeInput

// DefaultTransformer copies the request fields one to one.
func DefaultTransformer(req domain.EmployeeRequest) domain.CreateEmployeeInput {
	in := domain.CreateEmployeeInput{
		Name:  req.Name,
		Title: req.Title,
	}
	if req.Salary != nil {
		in.Salary = *req.Salary
	}
	if req.Age != nil {
		in.Age = *req.Age
	}
	return in
}
