package lostproperty

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/lostfound/internal/domain"
	"github.com/simp-lee/lostfound/internal/pkg"
)

// LostPropertyHandler handles REST API requests for the lost-property resource.
type LostPropertyHandler struct {
	svc domain.LostPropertyService
}

// NewLostPropertyHandler creates a new LostPropertyHandler with the given service.
func NewLostPropertyHandler(svc domain.LostPropertyService) *LostPropertyHandler {
	return &LostPropertyHandler{svc: svc}
}

// Create handles POST /api/v1/lostproperties.
func (h *LostPropertyHandler) Create(c *gin.Context) {
	var req CreateLostPropertyRequest
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

// Get handles GET /api/v1/lostproperties/:id.
func (h *LostPropertyHandler) Get(c *gin.Context) {
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

// List handles GET /api/v1/lostproperties.
func (h *LostPropertyHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.GetPage(c.Request.Context(), pkg.BuildQuery(req), req.PageIndex, req.PageSize)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/lostproperties/:id.
func (h *LostPropertyHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateLostPropertyRequest
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

// Delete handles DELETE /api/v1/lostproperties/:id (soft delete).
func (h *LostPropertyHandler) Delete(c *gin.Context) {
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

// HardDelete handles DELETE /api/v1/lostproperties/:id/hard.
func (h *LostPropertyHandler) HardDelete(c *gin.Context) {
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

// parseID extracts and validates the integer path parameter.
func parseID(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}
