package http

import (
	"context"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/dto"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListCleanings handles GET /api/v1/cleaning-orders.
func (s *Server) ListCleanings(c echo.Context) error {
	query, err := queries.NewListCleaningsQuery(c.QueryParam("status"))
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.h.Cleanings.List(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// CreateCleaning handles POST /api/v1/cleaning-orders.
func (s *Server) CreateCleaning(c echo.Context) error {
	var req cleaningRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateCleaningCommand(kernel.NewUUID(), req.Description)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.Cleaning.Create(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// GetCleaning handles GET /api/v1/cleaning-orders/{id}.
func (s *Server) GetCleaning(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetCleaningQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.Cleanings.Get(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateCleaning handles PATCH /api/v1/cleaning-orders/{id}.
func (s *Server) UpdateCleaning(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req cleaningRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewDescribeCleaningCommand(id, req.Description)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.Cleaning.Describe(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeleteCleaning handles DELETE /api/v1/cleaning-orders/{id}.
func (s *Server) DeleteCleaning(c echo.Context) error {
	cmd, err := s.cleaningCommand(c)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.h.Cleaning.Delete(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// StartCleaning handles POST /api/v1/cleaning-orders/{id}/start.
func (s *Server) StartCleaning(c echo.Context) error {
	return s.transitionCleaning(c, s.h.Cleaning.Start)
}

// FinishCleaning handles POST /api/v1/cleaning-orders/{id}/finish.
func (s *Server) FinishCleaning(c echo.Context) error {
	return s.transitionCleaning(c, s.h.Cleaning.Finish)
}

func (s *Server) transitionCleaning(
	c echo.Context,
	transition func(context.Context, commands.CleaningCommand) (dto.CleaningView, error),
) error {
	cmd, err := s.cleaningCommand(c)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := transition(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) cleaningCommand(c echo.Context) (commands.CleaningCommand, error) {
	id, err := pathUUID(c, "id")
	if err != nil {
		return commands.CleaningCommand{}, err
	}
	return commands.NewCleaningCommand(id)
}
