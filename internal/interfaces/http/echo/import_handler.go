package echo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/talentbase/candidate-import/internal/application/candidate"
)

type ImportHandler struct {
	upload    app.UploadCandidatesCSV
	start     app.StartCSVImport
	status    app.GetImportStatus
	result    app.GetImportResult
	errorFile app.GetImportErrorFile
}

type startImportRequest struct {
	UploadID          string            `json:"upload_id"`
	ColumnMapping     map[string]string `json:"column_mapping"`
	DuplicateStrategy string            `json:"duplicate_strategy"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(upload app.UploadCandidatesCSV, start app.StartCSVImport, status app.GetImportStatus, result app.GetImportResult, errorFile app.GetImportErrorFile) *ImportHandler {
	return &ImportHandler{
		upload:    upload,
		start:     start,
		status:    status,
		result:    result,
		errorFile: errorFile,
	}
}

func (h *ImportHandler) UploadCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "multipart field \"file\" is required",
		}})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "cannot read uploaded file",
		}})
	}
	defer src.Close()

	out, err := h.upload.Execute(c.Request().Context(), app.UploadCandidatesCSVInput{
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  src,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidUploadType):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_file_type",
				Message: "file must be a .csv",
			}})
		case errors.Is(err, app.ErrEmptyUpload):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "empty_file",
				Message: "file has no data rows",
			}})
		case errors.Is(err, app.ErrUploadTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, apiResponse{Error: &errorBody{
				Code:    "file_too_large",
				Message: "file exceeds the upload size limit",
			}})
		case errors.Is(err, app.ErrUnparsableUpload):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "unparsable_file",
				Message: err.Error(),
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to process upload",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) StartImport(c echo.Context) error {
	var req startImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.start.Execute(c.Request().Context(), app.StartCSVImportInput{
		UploadID:          req.UploadID,
		ColumnMapping:     req.ColumnMapping,
		DuplicateStrategy: req.DuplicateStrategy,
	})
	if err != nil {
		var missing *app.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "missing_required_fields",
				Message: missing.Error(),
			}})
		case errors.Is(err, app.ErrUnknownTarget):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "unknown_mapping_target",
				Message: err.Error(),
			}})
		case errors.Is(err, app.ErrInvalidDuplicateStrategy):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_duplicate_strategy",
				Message: "duplicate_strategy must be skip, update or error",
			}})
		case errors.Is(err, app.ErrUploadNotFound):
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "upload_not_found",
				Message: "no uploaded file for this upload_id",
			}})
		case errors.Is(err, app.ErrUnparsableUpload):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "unparsable_file",
				Message: err.Error(),
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to start import",
		}})
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

func (h *ImportHandler) ImportStatus(c echo.Context) error {
	out, err := h.status.Execute(c.Request().Context(), app.GetImportStatusInput{
		JobID: c.Param("id"),
	})
	if err != nil {
		return h.jobError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) ImportResult(c echo.Context) error {
	out, err := h.result.Execute(c.Request().Context(), app.GetImportResultInput{
		JobID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrImportNotFinished) {
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "import_not_finished",
				Message: "import is still running",
			}})
		}
		return h.jobError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) DownloadErrorLog(c echo.Context) error {
	out, err := h.errorFile.Execute(c.Request().Context(), app.GetImportErrorFileInput{
		JobID: c.Param("id"),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrImportNotFinished):
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "import_not_finished",
				Message: "import is still running",
			}})
		case errors.Is(err, app.ErrNoErrorFile):
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "no_error_file",
				Message: "import finished without errors",
			}})
		}
		return h.jobError(c, err)
	}

	return c.Attachment(out.Path, fmt.Sprintf("import_errors_%s.csv", c.Param("id")))
}

func (h *ImportHandler) jobError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidJobID):
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "invalid_job_id",
			Message: "id must be a valid UUID",
		}})
	case errors.Is(err, app.ErrImportJobNotFound):
		return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
			Code:    "not_found",
			Message: "import job not found",
		}})
	}
	return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
		Code:    "internal_error",
		Message: "failed to get import job",
	}})
}
