package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/ports"
)

// CollectionHandler handles collection-related requests
type CollectionHandler struct {
	collectionService ports.CollectionService
	logger            *logger.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionService ports.CollectionService, logger *logger.Logger) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		logger:            logger,
	}
}

// ListCollections godoc
// @Summary List collections
// @Description List every collection by position with section summaries and open task counts
// @Tags collections
// @Produce json
// @Success 200 {array} entities.CollectionSummary
// @Failure 503 {object} ErrorResponse
// @Router /collections [get]
func (h *CollectionHandler) ListCollections(c echo.Context) error {
	collections, err := h.collectionService.ListCollections(c.Request().Context())
	if err != nil {
		return serviceError(h.logger, "List collections", err)
	}
	return c.JSON(http.StatusOK, collections)
}

// GetInbox godoc
// @Summary Get the Inbox
// @Tags collections
// @Produce json
// @Success 200 {object} entities.CollectionSummary
// @Failure 404 {object} ErrorResponse
// @Router /collections/inbox [get]
func (h *CollectionHandler) GetInbox(c echo.Context) error {
	inbox, err := h.collectionService.GetInbox(c.Request().Context())
	if err != nil {
		return serviceError(h.logger, "Get inbox", err)
	}
	return c.JSON(http.StatusOK, inbox)
}

// GetCollection godoc
// @Summary Get collection by ID
// @Description Get a collection with its sections and their open top-level tasks
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} entities.CollectionDetail
// @Failure 404 {object} ErrorResponse
// @Router /collections/{id} [get]
func (h *CollectionHandler) GetCollection(c echo.Context) error {
	collection, err := h.collectionService.GetCollection(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(h.logger, "Get collection", err)
	}
	return c.JSON(http.StatusOK, collection)
}

// CreateCollection godoc
// @Summary Create a new collection
// @Description Create a collection at the end of the list with an Uncategorized section
// @Tags collections
// @Accept json
// @Produce json
// @Param request body ports.CreateCollectionRequest true "Collection data"
// @Success 201 {object} entities.Collection
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /collections [post]
func (h *CollectionHandler) CreateCollection(c echo.Context) error {
	var req ports.CreateCollectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	collection, err := h.collectionService.CreateCollection(c.Request().Context(), req)
	if err != nil {
		return serviceError(h.logger, "Create collection", err)
	}
	return c.JSON(http.StatusCreated, collection)
}

// UpdateCollection godoc
// @Summary Rename a collection
// @Tags collections
// @Accept json
// @Produce json
// @Param id path string true "Collection ID"
// @Param request body ports.UpdateCollectionRequest true "Collection data"
// @Success 200 {object} entities.Collection
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /collections/{id} [put]
func (h *CollectionHandler) UpdateCollection(c echo.Context) error {
	var req ports.UpdateCollectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	collection, err := h.collectionService.UpdateCollection(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(h.logger, "Update collection", err)
	}
	return c.JSON(http.StatusOK, collection)
}

// DeleteCollection godoc
// @Summary Delete a collection
// @Description Delete a collection with all of its sections and tasks
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} entities.Collection
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /collections/{id} [delete]
func (h *CollectionHandler) DeleteCollection(c echo.Context) error {
	collection, err := h.collectionService.DeleteCollection(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(h.logger, "Delete collection", err)
	}
	return c.JSON(http.StatusOK, collection)
}

// ReorderCollections godoc
// @Summary Reorder collections
// @Description Persist a new collection order; position equals index in the body
// @Tags collections
// @Accept json
// @Param request body []ports.ReorderEntry true "Collections in the desired order"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /collections/reorder [put]
func (h *CollectionHandler) ReorderCollections(c echo.Context) error {
	req, err := bindReorder(c)
	if err != nil {
		return err
	}
	if err := h.collectionService.ReorderCollections(c.Request().Context(), req); err != nil {
		return serviceError(h.logger, "Reorder collections", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// InitializeCollections godoc
// @Summary Ensure the Inbox exists
// @Tags collections
// @Produce json
// @Success 200 {object} entities.Collection
// @Router /collections/initialize [post]
func (h *CollectionHandler) InitializeCollections(c echo.Context) error {
	inbox, err := h.collectionService.InitializeCollections(c.Request().Context())
	if err != nil {
		return serviceError(h.logger, "Initialize collections", err)
	}
	return c.JSON(http.StatusOK, inbox)
}
