package lostproperty

import "github.com/gin-gonic/gin"

// LostPropertyModule implements the app.Module interface for the lost-property domain.
type LostPropertyModule struct {
	handler *LostPropertyHandler
}

// NewModule creates a new LostPropertyModule with the given handler.
// Panics if h is nil.
func NewModule(h *LostPropertyHandler) *LostPropertyModule {
	if h == nil {
		panic("lostproperty.NewModule: handler must not be nil")
	}
	return &LostPropertyModule{handler: h}
}

// RegisterRoutes registers lost-property API routes.
func (m *LostPropertyModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/lostproperties", m.handler.Create)
	api.GET("/lostproperties/:id", m.handler.Get)
	api.GET("/lostproperties", m.handler.List)
	api.PUT("/lostproperties/:id", m.handler.Update)
	api.DELETE("/lostproperties/:id", m.handler.Delete)
	api.DELETE("/lostproperties/:id/hard", m.handler.HardDelete)
}
