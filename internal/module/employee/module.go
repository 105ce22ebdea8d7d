package employee

import "github.com/gin-gonic/gin"

// EmployeeModule implements the app.Module interface for the employee domain.
type EmployeeModule struct {
	handler *EmployeeHandler
}

// NewModule creates a new EmployeeModule with the given handler.
// Panics if h is nil.
func NewModule(h *EmployeeHandler) *EmployeeModule {
	if h == nil {
		panic("employee.NewModule: handler must not be nil")
	}
	return &EmployeeModule{handler: h}
}

// RegisterRoutes registers employee API routes.
func (m *EmployeeModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/employees", m.handler.Create)
	api.GET("/employees/:id", m.handler.Get)
	api.GET("/employees", m.handler.List)
	api.PUT("/employees/:id", m.handler.Update)
	api.DELETE("/employees/:id", m.handler.Delete)
	api.DELETE("/employees/:id/hard", m.handler.HardDelete)
}
