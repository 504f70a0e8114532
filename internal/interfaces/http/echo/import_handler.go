package echo

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/supplier-import/internal/application/imports"
	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

const (
	MIMESpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	HeaderActorID   = "X-Actor-ID"
)

type ImportHandler struct {
	validate app.ValidateImport
	run      app.RunImport
	template app.DownloadTemplate
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(validate app.ValidateImport, run app.RunImport, template app.DownloadTemplate) *ImportHandler {
	return &ImportHandler{validate: validate, run: run, template: template}
}

// Validate parses the uploaded workbook and returns the report without
// touching storage. Clients sending Accept: xlsx get the report as a workbook.
func (h *ImportHandler) Validate(c echo.Context) error {
	if _, err := enterpriseID(c); err != nil {
		return badRequest(c, "invalid_enterprise", "enterpriseId must be a positive integer")
	}
	_, content, err := readUpload(c)
	if err != nil {
		return badRequest(c, "missing_file", "multipart field \"file\" is required")
	}

	asSheet := strings.Contains(c.Request().Header.Get(echo.HeaderAccept), MIMESpreadsheet)
	out, err := h.validate.Execute(c.Request().Context(), app.ValidateImportInput{
		Entity:        c.Param("entity"),
		Content:       content,
		AsSpreadsheet: asSheet,
	})
	if err != nil {
		return respondError(c, err, "failed to validate import")
	}

	if asSheet {
		c.Response().Header().Set(echo.HeaderContentDisposition, attachment(out.Entity+"_validation.xlsx"))
		return c.Blob(http.StatusOK, MIMESpreadsheet, out.Spreadsheet)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) Run(c echo.Context) error {
	enterprise, err := enterpriseID(c)
	if err != nil {
		return badRequest(c, "invalid_enterprise", "enterpriseId must be a positive integer")
	}
	actor, err := actorID(c)
	if err != nil {
		return badRequest(c, "invalid_actor", HeaderActorID+" must be an integer")
	}
	name, content, err := readUpload(c)
	if err != nil {
		return badRequest(c, "missing_file", "multipart field \"file\" is required")
	}

	out, err := h.run.Execute(c.Request().Context(), app.RunImportInput{
		Entity:       c.Param("entity"),
		EnterpriseID: enterprise,
		ActorID:      actor,
		FileName:     name,
		Content:      content,
	})
	if err != nil {
		return respondError(c, err, "failed to run import")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) Template(c echo.Context) error {
	out, err := h.template.Execute(c.Request().Context(), app.DownloadTemplateInput{Entity: c.Param("entity")})
	if err != nil {
		return respondError(c, err, "failed to build template")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, attachment(out.FileName))
	return c.Blob(http.StatusOK, MIMESpreadsheet, out.Content)
}

func enterpriseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("enterpriseId"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, app.ErrInvalidEnterprise
	}
	return id, nil
}

func actorID(c echo.Context) (int64, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func readUpload(c echo.Context) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, content, nil
}

func attachment(name string) string {
	return `attachment; filename="` + name + `"`
}

func badRequest(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

func respondError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, app.ErrUnknownEntity):
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "unknown_entity",
			Message: "entity must be one of partners, users, assignments",
		}})
	case errors.Is(err, app.ErrInvalidEnterprise):
		return badRequest(c, "invalid_enterprise", "enterpriseId must be a positive integer")
	case errors.Is(err, app.ErrInvalidRunID):
		return badRequest(c, "invalid_run_id", "id must be a valid UUID")
	case errors.Is(err, app.ErrImportRunNotFound):
		return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
			Code:    "not_found",
			Message: "import run not found",
		}})
	case errors.Is(err, app.ErrImportInProgress):
		return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
			Code:    "import_in_progress",
			Message: "an import for this entity is already running",
		}})
	case errors.Is(err, batch.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, apiResponse{Error: &errorBody{
			Code:    "store_unavailable",
			Message: "storage is unavailable, retry later",
		}})
	}

	return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
		Code:    "internal_error",
		Message: fallback,
	}})
}
