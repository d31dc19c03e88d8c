package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"stockroom/internal/auth"
	"stockroom/internal/errors"
	"stockroom/internal/middleware"
	"stockroom/internal/service"
)

// ItemHandler serves the inventory endpoints.
type ItemHandler struct {
	svc      service.ItemService
	sessions auth.Sessions
}

// NewItemHandler creates an item handler. The session resolver is only used
// by the legacy onlyMyItems query parameter on the public listing.
func NewItemHandler(svc service.ItemService, sessions auth.Sessions) *ItemHandler {
	return &ItemHandler{svc: svc, sessions: sessions}
}

// CreateItemRequest represents a new item payload. Quantity is loosely typed:
// form-based clients send numbers as strings.
type CreateItemRequest struct {
	ItemName    string      `json:"item_name"`
	Description *string     `json:"description"`
	Quantity    interface{} `json:"quantity"`
}

// UpdateItemRequest represents a partial item update. The user_id field is
// accepted for wire compatibility but never applied; ownership comes from the
// stored row and the session.
type UpdateItemRequest struct {
	ItemName    *string     `json:"item_name"`
	Description *string     `json:"description"`
	Quantity    interface{} `json:"quantity"`
	UserID      *uint       `json:"user_id"`
}

// ListItems godoc
// @Summary List all items with redacted owner profiles
// @Tags items
// @Produce json
// @Param descLimit query int false "Truncate descriptions to this many characters"
// @Param onlyMyItems query bool false "Restrict to the caller's items (legacy; requires session)"
// @Success 200 {array} shape.ItemView
// @Failure 400 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) ListItems(c echo.Context) error {
	limit, err := descLimitParam(c)
	if err != nil {
		return respondError(c, err)
	}

	opts := service.ListOptions{DescLimit: limit}
	if only := c.QueryParam("onlyMyItems"); only == "true" || only == "1" {
		userID, err := middleware.ResolveCookie(c, h.sessions)
		if err != nil {
			return respondError(c, errors.ErrUnauthorized)
		}
		opts.OwnerID = &userID
	}

	items, err := h.svc.List(c.Request().Context(), opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// MyItems godoc
// @Summary List the authenticated user's items
// @Tags items
// @Produce json
// @Param descLimit query int false "Truncate descriptions to this many characters"
// @Success 200 {array} shape.ItemView
// @Failure 401 {object} errors.ErrorResponse
// @Router /my_items [get]
func (h *ItemHandler) MyItems(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, errors.ErrUnauthorized)
	}
	limit, err := descLimitParam(c)
	if err != nil {
		return respondError(c, err)
	}

	items, err := h.svc.List(c.Request().Context(), service.ListOptions{OwnerID: &userID, DescLimit: limit})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetItem godoc
// @Summary Get a single item with its owner profile
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Param descLimit query int false "Truncate the description to this many characters"
// @Success 200 {object} shape.ItemView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return respondError(c, err)
	}
	limit, err := descLimitParam(c)
	if err != nil {
		return respondError(c, err)
	}

	item, err := h.svc.Get(c.Request().Context(), id, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// ItemsByUser godoc
// @Summary List a user's items as raw rows (legacy)
// @Tags items
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Router /items/user/{id} [get]
func (h *ItemHandler) ItemsByUser(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.svc.ListByOwner(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateItem godoc
// @Summary Create an item owned by the authenticated user
// @Tags items
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item fields"
// @Success 200 {object} shape.ItemView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) CreateItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, errors.ErrUnauthorized)
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}

	item, err := h.svc.Create(c.Request().Context(), userID, service.CreateItemInput{
		ItemName:    req.ItemName,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItem godoc
// @Summary Update an item the authenticated user owns
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body UpdateItemRequest true "Fields to change"
// @Success 200 {object} shape.ItemView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [put]
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, errors.ErrUnauthorized)
	}
	id, err := itemID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrMissingField)
	}

	item, err := h.svc.Update(c.Request().Context(), id, userID, service.UpdateItemInput{
		ItemName:    req.ItemName,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete an item the authenticated user owns
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, errors.ErrUnauthorized)
	}
	id, err := itemID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.svc.Delete(c.Request().Context(), id, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func itemID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, errors.ErrInvalidID
	}
	return uint(id), nil
}

func descLimitParam(c echo.Context) (*int, error) {
	raw := c.QueryParam("descLimit")
	if raw == "" {
		return nil, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return nil, errors.NewHTTPError(http.StatusBadRequest, "descLimit must be a non-negative integer", "INVALID_QUERY")
	}
	return &limit, nil
}
