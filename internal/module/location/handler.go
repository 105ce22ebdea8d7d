package location

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/lostfound/internal/domain"
	"github.com/simp-lee/lostfound/internal/pkg"
)

// LocationHandler handles REST API requests for the location resource.
type LocationHandler struct {
	svc domain.LocationService
}

// NewLocationHandler creates a new LocationHandler with the given service.
func NewLocationHandler(svc domain.LocationService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

// Create handles POST /api/v1/locations.
func (h *LocationHandler) Create(c *gin.Context) {
	var req CreateLocationRequest
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

// Get handles GET /api/v1/locations/:id.
func (h *LocationHandler) Get(c *gin.Context) {
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

// List handles GET /api/v1/locations.
func (h *LocationHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.GetPage(c.Request.Context(), pkg.BuildQuery(req), req.PageIndex, req.PageSize)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/locations/:id.
func (h *LocationHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateLocationRequest
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

// Delete handles DELETE /api/v1/locations/:id (soft delete).
func (h *LocationHandler) Delete(c *gin.Context) {
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

// HardDelete handles DELETE /api/v1/locations/:id/hard.
func (h *LocationHandler) HardDelete(c *gin.Context) {
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
