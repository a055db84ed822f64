package recipe

import (
	"Ginraidee/domain"
	"Ginraidee/pkg/llm"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventory struct {
	items []domain.InventoryItem
	err   error
}

func (f fakeInventory) Snapshot(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return f.items, f.err
}

func TestGenerateRecipeRestrictsToSelectedItems(t *testing.T) {
	fc := &fakeCompleter{reply: llm.ChatResponse{Choices: []string{"Flour and egg pasta"}}}
	svc := NewRecipeService(fakeInventory{items: pantryItems()}, NewOrchestrator(fc, nil, nil), nil)

	res, err := svc.GenerateRecipe(context.Background(), domain.GenerateRecipeRequest{
		Craving:  "pasta",
		Language: "en",
		ItemIDs:  []string{"flour"},
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"flour"}, res.UsedIngredientIDs)
	assert.Contains(t, fc.requests[0].Messages[1].Content, "Flour (1 kg)")
	assert.NotContains(t, fc.requests[0].Messages[1].Content, "Milk")
}

func TestGenerateRecipePropagatesSnapshotError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewRecipeService(fakeInventory{err: boom}, NewOrchestrator(&fakeCompleter{}, nil, nil), nil)

	_, err := svc.GenerateRecipe(context.Background(), domain.GenerateRecipeRequest{Craving: "x"}, "user-1")
	assert.ErrorIs(t, err, boom)
}

func TestSuggestRecipesUsesInjectedClock(t *testing.T) {
	fc := &fakeCompleter{reply: llm.ChatResponse{Choices: []string{"ok"}}}
	later := func() time.Time { return time.Date(2024, 7, 30, 8, 0, 0, 0, time.UTC) }
	svc := NewRecipeService(fakeInventory{items: pantryItems()}, NewOrchestrator(fc, nil, nil), later)

	res, err := svc.SuggestRecipes(context.Background(), domain.SuggestRecipeRequest{Language: "th"}, "user-1")
	require.NoError(t, err)

	// everything is past due or within three days of 2024-07-30
	assert.Len(t, res.ExpiringItems, 3)
	require.NotNil(t, res.Suggestion)
	assert.Equal(t, "คุณเป็นผู้ช่วยทำอาหารที่ช่วยแนะนำสูตรอาหารเพื่อลดการทิ้งอาหาร", fc.requests[0].Messages[0].Content)
}
