// Package prompt turns an inventory snapshot into a chat request for the
// recipe model and into the canned recipe used when the model is
// unavailable.
package prompt

import (
	"Ginraidee/domain"
	"Ginraidee/pkg/expiry"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGenerateMaxTokens int32   = 1000
	DefaultSuggestMaxTokens  int32   = 800
	DefaultTemperature       float32 = 0.7
)

type (
	// GenerationRequest is everything the orchestrator needs for one
	// completion attempt, including the snapshot used for reconciliation.
	GenerationRequest struct {
		RequestID    uint64
		Variant      domain.RecipeVariant
		Craving      string
		Language     domain.Language
		Items        []domain.InventoryItem
		SystemPrompt string
		UserPrompt   string
		MaxTokens    int32
		Temperature  float32
	}

	Builder struct {
		GenerateMaxTokens int32
		SuggestMaxTokens  int32
		Temperature       float32
		WindowDays        int
	}
)

func NewBuilder() *Builder {
	return &Builder{
		GenerateMaxTokens: DefaultGenerateMaxTokens,
		SuggestMaxTokens:  DefaultSuggestMaxTokens,
		Temperature:       DefaultTemperature,
		WindowDays:        expiry.DueSoonDays,
	}
}

// Build prepares a craving or whole-inventory request. At least one of
// craving and items must be present.
func (b *Builder) Build(craving string, items []domain.InventoryItem, lang domain.Language) (GenerationRequest, error) {
	craving = strings.TrimSpace(craving)
	if craving == "" && len(items) == 0 {
		return GenerationRequest{}, domain.NewValidationError("craving", "a craving or at least one ingredient is required")
	}
	lang = domain.ParseLanguage(string(lang))

	ingredients := InlineList(items)
	if len(items) == 0 {
		ingredients = lang.Pick("ไม่มี", "none")
	}

	req := GenerationRequest{
		Craving:      craving,
		Language:     lang,
		Items:        items,
		SystemPrompt: generatePersona.pick(lang),
		MaxTokens:    b.GenerateMaxTokens,
		Temperature:  b.Temperature,
	}
	if craving != "" {
		req.Variant = domain.RecipeVariantCraving
		req.UserPrompt = cravingPrompt(craving, ingredients, lang)
	} else {
		req.Variant = domain.RecipeVariantInventory
		req.UserPrompt = inventoryPrompt(ingredients, lang)
	}
	return req, nil
}

// BuildSuggestion prepares the expiring-items request. It returns
// domain.ErrNoExpiringIngredients when nothing is inside the window.
func (b *Builder) BuildSuggestion(items []domain.InventoryItem, now time.Time, lang domain.Language) (GenerationRequest, error) {
	lang = domain.ParseLanguage(string(lang))
	expiring := ExpiringWithin(items, now, b.WindowDays)
	if len(expiring) == 0 {
		return GenerationRequest{}, domain.ErrNoExpiringIngredients
	}

	return GenerationRequest{
		Variant:      domain.RecipeVariantExpiring,
		Language:     lang,
		Items:        expiring,
		SystemPrompt: suggestPersona.pick(lang),
		UserPrompt:   expiringPrompt(InlineList(expiring), lang),
		MaxTokens:    b.SuggestMaxTokens,
		Temperature:  b.Temperature,
	}, nil
}

// Fallback renders the canned recipe for req. It lists every snapshot item.
func Fallback(req GenerationRequest) string {
	bullets := BulletList(req.Items)
	if bullets == "" {
		bullets = "- " + req.Language.Pick("ไม่มี", "none")
	}
	return fallbackText(fallbackTitle(req), bullets, req.Language)
}

// ExpiringWithin keeps items expiring no later than days after now, soonest
// first. Past-due items are included.
func ExpiringWithin(items []domain.InventoryItem, now time.Time, days int) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if expiry.WithinWindow(item.ExpirationDate.Time, now, days) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpirationDate.Before(out[j].ExpirationDate.Time)
	})
	return out
}

// FormatItem renders "<name> (<quantity> <unit>)".
func FormatItem(item domain.InventoryItem) string {
	return item.Name + " (" + strconv.FormatFloat(item.Quantity, 'f', -1, 64) + " " + string(item.Unit) + ")"
}

func InlineList(items []domain.InventoryItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = FormatItem(item)
	}
	return strings.Join(parts, ", ")
}

func BulletList(items []domain.InventoryItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = "- " + FormatItem(item)
	}
	return strings.Join(parts, "\n")
}
