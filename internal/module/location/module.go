package location

import "github.com/gin-gonic/gin"

// LocationModule implements the app.Module interface for the location domain.
type LocationModule struct {
	handler *LocationHandler
}

// NewModule creates a new LocationModule with the given handler.
// Panics if h is nil.
func NewModule(h *LocationHandler) *LocationModule {
	if h == nil {
		panic("location.NewModule: handler must not be nil")
	}
	return &LocationModule{handler: h}
}

// RegisterRoutes registers location API routes.
func (m *LocationModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/locations", m.handler.Create)
	api.GET("/locations/:id", m.handler.Get)
	api.GET("/locations", m.handler.List)
	api.PUT("/locations/:id", m.handler.Update)
	api.DELETE("/locations/:id", m.handler.Delete)
	api.DELETE("/locations/:id/hard", m.handler.HardDelete)
}
