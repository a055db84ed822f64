package recipe

import (
	"Ginraidee/domain"
	"Ginraidee/pkg/llm"
	"Ginraidee/pkg/metrics"
	"Ginraidee/pkg/prompt"
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

type (
	// Orchestrator runs one completion attempt per request and always
	// produces a recipe: a provider failure yields the canned fallback.
	Orchestrator interface {
		Generate(ctx context.Context, req prompt.GenerationRequest) domain.RecipeResult
		GenerateFor(ctx context.Context, craving string, items []domain.InventoryItem, lang domain.Language) (domain.RecipeResult, error)
		Suggest(ctx context.Context, items []domain.InventoryItem, now time.Time, lang domain.Language) domain.SuggestionResult
	}

	orchestrator struct {
		completer llm.ChatCompleter
		builder   *prompt.Builder
		metrics   *metrics.Collector
		logger    *zap.Logger
		timeout   time.Duration
	}

	Option func(*orchestrator)
)

func WithMetrics(c *metrics.Collector) Option {
	return func(o *orchestrator) { o.metrics = c }
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(o *orchestrator) { o.timeout = d }
}

func NewOrchestrator(completer llm.ChatCompleter, builder *prompt.Builder, logger *zap.Logger, opts ...Option) Orchestrator {
	if completer == nil {
		completer = llm.Disabled("no completer configured")
	}
	if builder == nil {
		builder = prompt.NewBuilder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &orchestrator{
		completer: completer,
		builder:   builder,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *orchestrator) Generate(ctx context.Context, req prompt.GenerationRequest) domain.RecipeResult {
	result := domain.RecipeResult{
		RequestID: req.RequestID,
		Variant:   req.Variant,
	}

	text, err := o.complete(ctx, req)
	if err != nil {
		genErr := &domain.GenerationError{Provider: o.completer.Name(), Cause: err}
		o.logger.Warn("recipe generation failed, using fallback",
			zap.Uint64("request_id", req.RequestID),
			zap.String("variant", string(req.Variant)),
			zap.Error(genErr),
		)
		o.metrics.ObserveProviderFailure(o.completer.Name())
		result.RecipeText = prompt.Fallback(req)
		result.Source = domain.RecipeSourceFallback
	} else {
		result.RecipeText = text
		result.Source = domain.RecipeSourceGenerated
	}

	result.UsedIngredientIDs = Reconcile(result.RecipeText, req.Items)
	o.metrics.ObserveRecipe(string(result.Variant), string(result.Source))
	return result
}

func (o *orchestrator) GenerateFor(ctx context.Context, craving string, items []domain.InventoryItem, lang domain.Language) (domain.RecipeResult, error) {
	req, err := o.builder.Build(craving, items, lang)
	if err != nil {
		return domain.RecipeResult{}, err
	}
	return o.Generate(ctx, req), nil
}

func (o *orchestrator) Suggest(ctx context.Context, items []domain.InventoryItem, now time.Time, lang domain.Language) domain.SuggestionResult {
	lang = domain.ParseLanguage(string(lang))
	req, err := o.builder.BuildSuggestion(items, now, lang)
	if errors.Is(err, domain.ErrNoExpiringIngredients) {
		return domain.SuggestionResult{
			Message:       prompt.NoExpiringMessage(lang),
			ExpiringItems: []domain.InventoryItem{},
		}
	}

	result := o.Generate(ctx, req)
	return domain.SuggestionResult{
		ExpiringItems: req.Items,
		Suggestion:    &result,
	}
}

// complete returns the trimmed first choice, or the placeholder when the
// provider answered without content.
func (o *orchestrator) complete(ctx context.Context, req prompt.GenerationRequest) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.completer.Complete(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: req.SystemPrompt},
			{Role: llm.RoleUser, Content: req.UserPrompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.FirstContent())
	if text == "" {
		o.logger.Debug("provider returned no content",
			zap.Uint64("request_id", req.RequestID),
			zap.Error(domain.ErrEmptyCompletion),
		)
		return prompt.Placeholder(req.Variant, req.Language), nil
	}
	return text, nil
}

// Reconcile returns the ids of items whose name appears in text, ignoring
// case. The match is a plain substring test and only annotates the result.
func Reconcile(text string, items []domain.InventoryItem) []string {
	lower := strings.ToLower(text)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if name != "" && strings.Contains(lower, name) {
			ids = append(ids, item.ID)
		}
	}
	return ids
}
