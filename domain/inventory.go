package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddInventoryItem    = "inventory item added successfully"
	MessageSuccessUpdateInventoryItem = "inventory item updated successfully"
	MessageSuccessDeleteInventoryItem = "inventory item deleted successfully"
	MessageSuccessGetInventoryItems   = "inventory items retrieved successfully"
	MessageSuccessGetInventoryItem    = "inventory item retrieved successfully"
	MessageSuccessGetExpiringItems    = "expiring items retrieved successfully"
	MessageSuccessGetInventoryStats   = "inventory statistics retrieved successfully"

	MessageFailedAddInventoryItem    = "failed to add inventory item"
	MessageFailedUpdateInventoryItem = "failed to update inventory item"
	MessageFailedDeleteInventoryItem = "failed to delete inventory item"
	MessageFailedGetInventoryItems   = "failed to retrieve inventory items"
	MessageFailedGetInventoryItem    = "failed to retrieve inventory item"
	MessageFailedGetExpiringItems    = "failed to retrieve expiring items"
	MessageFailedGetInventoryStats   = "failed to retrieve inventory statistics"

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInvalidExpirationDate = errors.New("invalid expiration date")
	ErrInvalidQuantity       = errors.New("quantity must not be negative")
	ErrInvalidCategory       = errors.New("unknown category")
	ErrInvalidUnit           = errors.New("unknown unit")
)

type (
	InventoryItem struct {
		ID              string    `json:"id"`
		OwnerID         string    `json:"owner_id"`
		Name            string    `json:"name"`
		Category        Category  `json:"category"`
		Quantity        float64   `json:"quantity"`
		Unit            Unit      `json:"unit"`
		ExpirationDate  Date      `json:"expiration_date"`
		Emoji           string    `json:"emoji,omitempty"`
		BackgroundColor string    `json:"background_color,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	// InventoryItemResponse carries the status derived at read time; it is
	// never persisted.
	InventoryItemResponse struct {
		InventoryItem
		Status     string `json:"status"`
		StatusText string `json:"status_text"`
	}

	AddInventoryItemRequest struct {
		Name            string  `json:"name" validate:"required,max=255"`
		Category        string  `json:"category" validate:"required,food_category"`
		Quantity        float64 `json:"quantity" validate:"gte=0"`
		Unit            string  `json:"unit" validate:"required,food_unit"`
		ExpirationDate  string  `json:"expiration_date" validate:"required,iso_date"`
		Emoji           string  `json:"emoji,omitempty" validate:"omitempty,max=10"`
		BackgroundColor string  `json:"background_color,omitempty" validate:"omitempty,max=20"`
	}

	UpdateInventoryItemRequest struct {
		Name            *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
		Category        *string  `json:"category,omitempty" validate:"omitempty,food_category"`
		Quantity        *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
		Unit            *string  `json:"unit,omitempty" validate:"omitempty,food_unit"`
		ExpirationDate  *string  `json:"expiration_date,omitempty" validate:"omitempty,iso_date"`
		Emoji           *string  `json:"emoji,omitempty" validate:"omitempty,max=10"`
		BackgroundColor *string  `json:"background_color,omitempty" validate:"omitempty,max=20"`
	}

	InventoryStatsResponse struct {
		TotalItems    int `json:"total_items"`
		ExpiredItems  int `json:"expired_items"`
		TodayItems    int `json:"today_items"`
		TomorrowItems int `json:"tomorrow_items"`
		FreshItems    int `json:"fresh_items"`
	}
)

func (r UpdateInventoryItemRequest) IsEmpty() bool {
	return r.Name == nil && r.Category == nil && r.Quantity == nil && r.Unit == nil &&
		r.ExpirationDate == nil && r.Emoji == nil && r.BackgroundColor == nil
}
