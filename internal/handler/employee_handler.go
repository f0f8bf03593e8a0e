package handler

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/logger"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/service"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/service/serviceutils"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/validation"
	"github.com/locvowork/employee_management_sample/employeeapi/pkg/xlsxexport"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSectionID = "employees"
)

type EmployeeHandler struct {
	svc    service.EmployeeService
	layout *xlsxexport.Layout
}

// NewEmployeeHandler creates the handler. layout drives GET /employees/export.
func NewEmployeeHandler(svc service.EmployeeService, layout *xlsxexport.Layout) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, layout: layout}
}

// Register mounts the employee routes on g. Static paths are registered
// alongside /:id; echo's router prefers them. A bare /employees/search
// lists everyone.
func (h *EmployeeHandler) Register(g *echo.Group) {
	g.GET("/employees", h.ListHandler)
	g.GET("/employees/search", h.SearchHandler)
	g.GET("/employees/search/", h.SearchHandler)
	g.GET("/employees/search/:q", h.SearchHandler)
	g.GET("/employees/highestSalary", h.HighestSalaryHandler)
	g.GET("/employees/topTenHighestEarning", h.TopTenHandler)
	g.GET("/employees/export", h.ExportHandler)
	g.GET("/employees/:id", h.GetHandler)
	g.POST("/employees", h.CreateHandler)
	g.DELETE("/employees/:id", h.DeleteHandler)
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	employees, err := h.svc.List(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, employees)
}

func (h *EmployeeHandler) SearchHandler(c echo.Context) error {
	q, err := pathParam(c, "q")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid search term", err)
	}
	employees, err := h.svc.SearchByName(c.Request().Context(), q)
	if err != nil {
		return serviceutils.ResponseAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, employees)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}
	emp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, emp)
}

func (h *EmployeeHandler) HighestSalaryHandler(c echo.Context) error {
	salary, err := h.svc.HighestSalary(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, salary)
}

func (h *EmployeeHandler) TopTenHandler(c echo.Context) error {
	names, err := h.svc.TopTenHighestEarning(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, names)
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	var req domain.EmployeeRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if v := validation.Struct(req); v != nil {
		return serviceutils.ResponseViolations(c, v)
	}

	emp, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return serviceutils.ResponseAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, emp)
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}
	name, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, name)
}

// ExportHandler streams all employees as an xlsx attachment.
func (h *EmployeeHandler) ExportHandler(c echo.Context) error {
	ctx := c.Request().Context()
	employees, err := h.svc.List(ctx)
	if err != nil {
		return serviceutils.ResponseAppError(c, err)
	}

	var buf bytes.Buffer
	if err := xlsxexport.New(h.layout).Bind(exportSectionID, employees).WriteTo(&buf); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate Excel file", err)
	}
	logger.InfoLog(ctx, "Exported %d employees", len(employees))

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// pathParam decodes a path parameter. echo matches on URL.RawPath when one
// is set and leaves its escapes in the value; otherwise the value is
// already decoded.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}
