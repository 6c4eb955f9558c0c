package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/talentbase/candidate-import/internal/application/candidate"
)

type CandidateHandler struct {
	useCase app.GetCandidateByID
}

func NewCandidateHandler(useCase app.GetCandidateByID) *CandidateHandler {
	return &CandidateHandler{useCase: useCase}
}

func (h *CandidateHandler) GetCandidateByID(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetCandidateByIDInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCandidateID) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_candidate_id",
				Message: "id must be a valid UUID",
			}})
		}
		if errors.Is(err, app.ErrCandidateNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "candidate not found",
			}})
		}

		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get candidate",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
