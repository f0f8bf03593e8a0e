package service

import (
	"sort"
	"strings"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
)

// TopEarnersLimit is the number of names returned by the top earners query.
const TopEarnersLimit = 10

// FilterByName keeps employees whose name contains q, preserving order.
// The match is case-sensitive; an empty q keeps everything.
func FilterByName(employees []domain.Employee, q string) []domain.Employee {
	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(e.Name, q) {
			out = append(out, e)
		}
	}
	return out
}

// MaxSalary returns the highest salary, or 0 for an empty list.
func MaxSalary(employees []domain.Employee) int {
	max := 0
	for i, e := range employees {
		if i == 0 || e.Salary > max {
			max = e.Salary
		}
	}
	return max
}

// TopEarnerNames returns the names of the n best paid employees, highest
// first. Equal salaries keep their input order.
func TopEarnerNames(employees []domain.Employee, n int) []string {
	sorted := make([]domain.Employee, len(employees))
	copy(sorted, employees)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Salary > sorted[j].Salary
	})

	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	names := make([]string, 0, len(sorted))
	for _, e := range sorted {
		names = append(names, e.Name)
	}
	return names
}
