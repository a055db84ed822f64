package handlers

import (
	"Ginraidee/domain"
	"Ginraidee/internal/api/presenters"
	"Ginraidee/internal/utils"
	"Ginraidee/pkg/expiry"
	"Ginraidee/pkg/inventory"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InventoryHandler interface {
		AddItem(c *fiber.Ctx) error
		GetItems(c *fiber.Ctx) error
		GetItem(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		GetExpiringSoon(c *fiber.Ctx) error
		GetItemsByDate(c *fiber.Ctx) error
		GetStats(c *fiber.Ctx) error
		GetCatalog(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *inventoryHandler) AddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddInventoryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddInventoryItem, utils.ValidationError(err))
	}

	res, err := h.inventoryService.AddItem(c.Context(), *req, userID, languageOf(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedAddInventoryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddInventoryItem)
}

func (h *inventoryHandler) GetItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	filter, ok := expiry.ParseFilter(c.Query("status", "all"))
	if !ok {
		err := domain.NewValidationError("status", fmt.Sprintf("unknown filter %q", c.Query("status")))
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInventoryItems, err)
	}

	items, err := h.inventoryService.GetItems(c.Context(), userID, filter, languageOf(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetInventoryItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetInventoryItems)
}

func (h *inventoryHandler) GetItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.inventoryService.GetItemByID(c.Context(), c.Params("id"), userID, languageOf(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetInventoryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInventoryItem)
}

func (h *inventoryHandler) UpdateItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")
	req := new(domain.UpdateInventoryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateInventoryItem, utils.ValidationError(err))
	}

	res, err := h.inventoryService.UpdateItem(c.Context(), itemID, *req, userID, languageOf(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedUpdateInventoryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateInventoryItem)
}

func (h *inventoryHandler) DeleteItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	if err := h.inventoryService.DeleteItem(c.Context(), itemID, userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedDeleteInventoryItem, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"id": itemID}, fiber.StatusOK, domain.MessageSuccessDeleteInventoryItem)
}

func (h *inventoryHandler) GetExpiringSoon(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.inventoryService.GetExpiringSoon(c.Context(), userID, languageOf(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetExpiringItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetExpiringItems)
}

func (h *inventoryHandler) GetItemsByDate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.inventoryService.GetItemsByDate(c.Context(), userID, c.Params("date"), languageOf(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetInventoryItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetInventoryItems)
}

func (h *inventoryHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.inventoryService.GetStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetInventoryStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetInventoryStats)
}

func (h *inventoryHandler) GetCatalog(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, fiber.Map{
		"categories": domain.Categories,
		"units":      domain.Units,
	}, fiber.StatusOK, "")
}
