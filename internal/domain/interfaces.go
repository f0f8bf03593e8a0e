package domain

import "context"

// EmployeeClient is the typed interface to the remote employee service.
// A nil envelope with a nil error means the call produced no response at all.
type EmployeeClient interface {
	FindAll(ctx context.Context) (*Envelope[[]Employee], error)
	Create(ctx context.Context, in CreateEmployeeInput) (*Envelope[Employee], error)
	DeleteByName(ctx context.Context, req DeleteRequest) (*Envelope[bool], error)
	FindByID(ctx context.Context, id string) (*Envelope[Employee], error)
}
