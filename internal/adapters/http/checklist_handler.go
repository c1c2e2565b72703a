package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/ports"
)

// ChecklistHandler handles checklist item requests
type ChecklistHandler struct {
	checklistService ports.ChecklistService
	logger           *logger.Logger
}

// NewChecklistHandler creates a new checklist handler
func NewChecklistHandler(checklistService ports.ChecklistService, logger *logger.Logger) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService, logger: logger}
}

// CreateChecklistItem godoc
// @Summary Add a checklist item
// @Tags checklist
// @Accept json
// @Produce json
// @Param request body ports.CreateChecklistItemRequest true "Checklist item data"
// @Success 201 {object} entities.ChecklistItem
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /checklist-items [post]
func (h *ChecklistHandler) CreateChecklistItem(c echo.Context) error {
	var req ports.CreateChecklistItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.checklistService.CreateChecklistItem(c.Request().Context(), req)
	if err != nil {
		return serviceError(h.logger, "Create checklist item", err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateChecklistItem godoc
// @Summary Update a checklist item
// @Tags checklist
// @Accept json
// @Produce json
// @Param id path string true "Checklist item ID"
// @Param request body ports.UpdateChecklistItemRequest true "Checklist item data"
// @Success 200 {object} entities.ChecklistItem
// @Failure 404 {object} ErrorResponse
// @Router /checklist-items/{id} [put]
func (h *ChecklistHandler) UpdateChecklistItem(c echo.Context) error {
	var req ports.UpdateChecklistItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.checklistService.UpdateChecklistItem(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(h.logger, "Update checklist item", err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteChecklistItem godoc
// @Summary Delete a checklist item
// @Tags checklist
// @Produce json
// @Param id path string true "Checklist item ID"
// @Success 200 {object} entities.ChecklistItem
// @Failure 404 {object} ErrorResponse
// @Router /checklist-items/{id} [delete]
func (h *ChecklistHandler) DeleteChecklistItem(c echo.Context) error {
	item, err := h.checklistService.DeleteChecklistItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(h.logger, "Delete checklist item", err)
	}
	return c.JSON(http.StatusOK, item)
}

// ReorderChecklistItems godoc
// @Summary Reorder checklist items
// @Description Persist a checklist order; entries naming task_id move to that task
// @Tags checklist
// @Accept json
// @Param request body []ports.ReorderEntry true "Items in the desired order"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /checklist-items/reorder [put]
func (h *ChecklistHandler) ReorderChecklistItems(c echo.Context) error {
	req, err := bindReorder(c)
	if err != nil {
		return err
	}
	if err := h.checklistService.ReorderChecklistItems(c.Request().Context(), req); err != nil {
		return serviceError(h.logger, "Reorder checklist items", err)
	}
	return c.NoContent(http.StatusNoContent)
}
