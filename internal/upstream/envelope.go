package upstream

import (
	"fmt"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/apperr"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
)

// Unwrap returns the payload of a successful envelope.
//
// It fails with EmptyResponse for a nil envelope, with a RemoteError carrying
// the raw status text when the status is not the success sentinel, and with
// EmptyPayload when a successful envelope has no data.
func Unwrap[T any](env *domain.Envelope[T]) (T, error) {
	var zero T
	if env == nil {
		return zero, apperr.EmptyResponse()
	}
	if !env.Succeeded() {
		return zero, apperr.Remote(fmt.Sprintf("Remote service error: %s", env.Status))
	}
	if env.Data == nil {
		return zero, apperr.EmptyPayload()
	}
	return *env.Data, nil
}
