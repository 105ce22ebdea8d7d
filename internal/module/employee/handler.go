package employee

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simp-lee/lostfound/internal/domain"
	"github.com/simp-lee/lostfound/internal/pkg"
)

// EmployeeHandler handles REST API requests for the employee resource.
type EmployeeHandler struct {
	svc domain.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler with the given service.
func NewEmployeeHandler(svc domain.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// Create handles POST /api/v1/employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	entity := req.toEntity()
	if err := h.svc.Add(c.Request.Context(), entity); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, entity)
}

// Get handles GET /api/v1/employees/:id.
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	entity, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if entity == nil {
		pkg.Error(c, domain.ErrNotFound)
		return
	}

	pkg.Success(c, entity)
}

// List handles GET /api/v1/employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.GetPage(c.Request.Context(), pkg.BuildQuery(req), req.PageIndex, req.PageSize)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/employees/:id.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateEmployeeRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	entity := req.toEntity(id)
	if err := h.svc.Update(c.Request.Context(), entity); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, entity)
}

// Delete handles DELETE /api/v1/employees/:id (soft delete).
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// HardDelete handles DELETE /api/v1/employees/:id/hard. It cascades to the
// employee's lost properties.
func (h *EmployeeHandler) HardDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.HardDelete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// parseID extracts and validates the UUID path parameter.
func parseID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", err
	}
	return id, nil
}
