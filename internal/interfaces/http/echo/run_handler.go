package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/supplier-import/internal/application/imports"
)

type RunHandler struct {
	useCase app.GetImportRun
}

func NewRunHandler(useCase app.GetImportRun) *RunHandler {
	return &RunHandler{useCase: useCase}
}

func (h *RunHandler) GetByID(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetImportRunInput{ID: c.Param("id")})
	if err != nil {
		return respondError(c, err, "failed to get import run")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
