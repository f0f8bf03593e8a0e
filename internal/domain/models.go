package domain

import (
	"strings"

	"github.com/google/uuid"
)

// SuccessStatus is the status string the upstream service uses for a successful call.
const SuccessStatus = "Successfully processed request."

// Employee is an employee record as owned by the upstream service.
// Every field except ID is prefixed with employee_ on the wire.
type Employee struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"employee_name"`
	Salary int       `json:"employee_salary"`
	Age    int       `json:"employee_age"`
	Title  string    `json:"employee_title"`
	Email  string    `json:"employee_email"`
}

// Complete reports whether every field of the employee is populated.
func (e Employee) Complete() bool {
	return e.ID != uuid.Nil &&
		strings.TrimSpace(e.Name) != "" &&
		e.Salary > 0 &&
		e.Age > 0 &&
		e.Title != "" &&
		e.Email != ""
}

// EmployeeRequest is the inbound body for creating an employee.
type EmployeeRequest struct {
	Name   string `json:"name" validate:"required,notblank,min=2,max=100"`
	Salary *int   `json:"salary" validate:"required,gt=0,min=1000"`
	Age    *int   `json:"age" validate:"required,min=16,max=75"`
	Title  string `json:"title" validate:"required,notblank,min=2,max=100"`
}

// CreateEmployeeInput is the body sent to the upstream create operation.
type CreateEmployeeInput struct {
	Name   string `json:"name"`
	Salary int    `json:"salary"`
	Age    int    `json:"age"`
	Title  string `json:"title"`
}

// DeleteRequest is the body of the upstream delete-by-name operation.
// The upstream service has no delete-by-id.
type DeleteRequest struct {
	Name string `json:"name"`
}

// Envelope is the upstream response wrapper.
// Data is nil when the upstream omitted the payload or sent null.
type Envelope[T any] struct {
	Status string `json:"status"`
	Data   *T     `json:"data"`
}

// Succeeded reports whether the status matches the success sentinel.
func (e *Envelope[T]) Succeeded() bool {
	return e != nil && strings.EqualFold(e.Status, SuccessStatus)
}

// OK builds a successful envelope around v.
func OK[T any](v T) *Envelope[T] {
	return &Envelope[T]{Status: SuccessStatus, Data: &v}
}
