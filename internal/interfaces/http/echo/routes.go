package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, runHandler *RunHandler) {
	v1 := server.Group("/api/v1")
	v1.POST("/enterprises/:enterpriseId/imports/:entity/validate", importHandler.Validate)
	v1.POST("/enterprises/:enterpriseId/imports/:entity", importHandler.Run)
	v1.GET("/imports/templates/:entity", importHandler.Template)
	v1.GET("/import-runs/:id", runHandler.GetByID)
}
