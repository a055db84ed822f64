package recipe

import (
	"Ginraidee/domain"
	"context"
	"time"
)

type (
	// InventorySource supplies an owner's current items.
	InventorySource interface {
		Snapshot(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	}

	RecipeService interface {
		GenerateRecipe(ctx context.Context, req domain.GenerateRecipeRequest, userID string) (domain.RecipeResult, error)
		SuggestRecipes(ctx context.Context, req domain.SuggestRecipeRequest, userID string) (domain.SuggestionResult, error)
	}

	recipeService struct {
		inventory    InventorySource
		orchestrator Orchestrator
		now          func() time.Time
	}
)

func NewRecipeService(inventory InventorySource, orchestrator Orchestrator, now func() time.Time) RecipeService {
	if now == nil {
		now = time.Now
	}
	return &recipeService{
		inventory:    inventory,
		orchestrator: orchestrator,
		now:          now,
	}
}

func (s *recipeService) GenerateRecipe(ctx context.Context, req domain.GenerateRecipeRequest, userID string) (domain.RecipeResult, error) {
	items, err := s.inventory.Snapshot(ctx, userID)
	if err != nil {
		return domain.RecipeResult{}, err
	}
	if len(req.ItemIDs) > 0 {
		items = pick(items, req.ItemIDs)
	}
	return s.orchestrator.GenerateFor(ctx, req.Craving, items, domain.ParseLanguage(req.Language))
}

func (s *recipeService) SuggestRecipes(ctx context.Context, req domain.SuggestRecipeRequest, userID string) (domain.SuggestionResult, error) {
	items, err := s.inventory.Snapshot(ctx, userID)
	if err != nil {
		return domain.SuggestionResult{}, err
	}
	return s.orchestrator.Suggest(ctx, items, s.now(), domain.ParseLanguage(req.Language)), nil
}

// pick keeps the items named in ids, in snapshot order.
func pick(items []domain.InventoryItem, ids []string) []domain.InventoryItem {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]domain.InventoryItem, 0, len(ids))
	for _, item := range items {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}
