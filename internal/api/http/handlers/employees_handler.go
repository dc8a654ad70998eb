package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// EmployeesHandler exposes employee signup/login plus the admin directory.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// Signup handles POST /api/employees/signup.
func (h *EmployeesHandler) Signup(c *fiber.Ctx) error {
	var req dto.EmployeeSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	employee, err := h.employees.Signup(c.Context(), service.EmployeeInput{
		EmployeeID:  req.EmployeeID,
		Name:        req.Name,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Department:  req.Department,
		Designation: req.Designation,
	})
	if err != nil {
		return err
	}

	return dto.JSON(c, http.StatusCreated, dto.OKMessage("Registration successful", dto.NewEmployeeResponse(employee)))
}

// Login handles POST /api/employees/login.
func (h *EmployeesHandler) Login(c *fiber.Ctx) error {
	var req dto.EmployeeLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if req.EmployeeID == "" || req.Mobile == "" {
		return apperrors.NewValidationError("employeeId and mobile are required")
	}

	employee, err := h.employees.Login(c.Context(), req.EmployeeID, req.Mobile)
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("Login successful", dto.NewEmployeeResponse(employee)))
}

// Create handles POST /api/employees. Same rules as signup, admin-side.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	employee, err := h.employees.Signup(c.Context(), service.EmployeeInput{
		EmployeeID:  req.EmployeeID,
		Name:        req.Name,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Department:  req.Department,
		Designation: req.Designation,
	})
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusCreated, dto.OKMessage("Employee created successfully", dto.NewEmployeeResponse(employee)))
}

// List handles GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.Context())
	if err != nil {
		return err
	}
	responses := dto.NewEmployeeResponses(employees)
	return dto.JSON(c, http.StatusOK, dto.List(responses, len(responses)))
}

// Update handles PUT /api/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}

	employee, err := h.employees.Update(c.Context(), c.Params("id"), service.EmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Mobile:      req.Mobile,
		Department:  req.Department,
		Designation: req.Designation,
	})
	if err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("Employee updated successfully", dto.NewEmployeeResponse(employee)))
}

// Deactivate handles DELETE /api/employees/:id.
func (h *EmployeesHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.employees.Deactivate(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return dto.JSON(c, http.StatusOK, dto.OKMessage("Employee deactivated successfully", nil))
}
