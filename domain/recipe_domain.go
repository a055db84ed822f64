package domain

import (
	"errors"
)

var (
	MessageSuccessGenerateRecipe = "recipe generated successfully"
	MessageSuccessSuggestRecipes = "recipe suggestions generated successfully"
	MessageNoExpiringIngredients = "no expiring ingredients found"

	MessageFailedGenerateRecipe = "failed to generate recipe"
	MessageFailedSuggestRecipes = "failed to suggest recipes"

	ErrNoExpiringIngredients = errors.New("no expiring ingredients found")
	ErrEmptyCompletion       = errors.New("provider returned no completion")
)

type (
	RecipeSource  string
	RecipeVariant string
)

const (
	RecipeSourceGenerated RecipeSource = "generated"
	RecipeSourceFallback  RecipeSource = "fallback"

	RecipeVariantCraving   RecipeVariant = "craving"
	RecipeVariantInventory RecipeVariant = "inventory"
	RecipeVariantExpiring  RecipeVariant = "expiring"
)

type (
	GenerateRecipeRequest struct {
		Craving  string   `json:"craving" validate:"max=500"`
		Language string   `json:"language" validate:"omitempty,oneof=th en"`
		ItemIDs  []string `json:"item_ids,omitempty" validate:"omitempty,dive,uuid"`
	}

	SuggestRecipeRequest struct {
		Language string `json:"language" validate:"omitempty,oneof=th en"`
	}

	RecipeResult struct {
		RequestID         uint64        `json:"request_id,omitempty"`
		RecipeText        string        `json:"recipe"`
		UsedIngredientIDs []string      `json:"used_ingredient_ids"`
		Source            RecipeSource  `json:"source"`
		Variant           RecipeVariant `json:"variant"`
	}

	SuggestionResult struct {
		Message       string          `json:"message,omitempty"`
		ExpiringItems []InventoryItem `json:"expiring_items"`
		Suggestion    *RecipeResult   `json:"suggestion,omitempty"`
	}
)
