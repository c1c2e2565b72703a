package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/ports"
)

// SectionHandler handles section-related requests
type SectionHandler struct {
	sectionService ports.SectionService
	logger         *logger.Logger
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(sectionService ports.SectionService, logger *logger.Logger) *SectionHandler {
	return &SectionHandler{
		sectionService: sectionService,
		logger:         logger,
	}
}

// CreateSection godoc
// @Summary Create a new section
// @Description Append a section to a collection
// @Tags sections
// @Accept json
// @Produce json
// @Param request body ports.CreateSectionRequest true "Section data"
// @Success 201 {object} entities.Section
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sections [post]
func (h *SectionHandler) CreateSection(c echo.Context) error {
	var req ports.CreateSectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	section, err := h.sectionService.CreateSection(c.Request().Context(), req)
	if err != nil {
		return serviceError(h.logger, "Create section", err)
	}
	return c.JSON(http.StatusCreated, section)
}

// UpdateSection godoc
// @Summary Rename a section
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param request body ports.UpdateSectionRequest true "Section data"
// @Success 200 {object} entities.Section
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sections/{id} [put]
func (h *SectionHandler) UpdateSection(c echo.Context) error {
	var req ports.UpdateSectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	section, err := h.sectionService.UpdateSection(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(h.logger, "Update section", err)
	}
	return c.JSON(http.StatusOK, section)
}

// DeleteSection godoc
// @Summary Delete a section
// @Tags sections
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} entities.Section
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sections/{id} [delete]
func (h *SectionHandler) DeleteSection(c echo.Context) error {
	section, err := h.sectionService.DeleteSection(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(h.logger, "Delete section", err)
	}
	return c.JSON(http.StatusOK, section)
}

// ReorderSections godoc
// @Summary Reorder sections
// @Description Persist a section order; entries naming collection_id move into that collection
// @Tags sections
// @Accept json
// @Param request body []ports.ReorderEntry true "Sections in the desired order"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sections/reorder [put]
func (h *SectionHandler) ReorderSections(c echo.Context) error {
	req, err := bindReorder(c)
	if err != nil {
		return err
	}
	if err := h.sectionService.ReorderSections(c.Request().Context(), req); err != nil {
		return serviceError(h.logger, "Reorder sections", err)
	}
	return c.NoContent(http.StatusNoContent)
}
