package recipe

import (
	"Ginraidee/domain"
	"Ginraidee/pkg/prompt"
	"context"
	"sync"
)

// Board holds the recipe currently on display. Every request takes a new id
// from Begin and only the result carrying the latest id may replace what is
// shown, so a slow earlier request can never overwrite a newer one.
type Board struct {
	mu      sync.Mutex
	latest  uint64
	current *domain.RecipeResult
}

func (b *Board) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest++
	return b.latest
}

// Apply stores res if it answers the latest request and reports whether it
// did.
func (b *Board) Apply(res domain.RecipeResult) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if res.RequestID == 0 || res.RequestID != b.latest {
		return false
	}
	b.current = &res
	return true
}

func (b *Board) Current() (domain.RecipeResult, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return domain.RecipeResult{}, false
	}
	return *b.current, true
}

// Request stamps req with a fresh id, runs it and applies the result.
func (b *Board) Request(ctx context.Context, o Orchestrator, req prompt.GenerationRequest) (domain.RecipeResult, bool) {
	req.RequestID = b.Begin()
	res := o.Generate(ctx, req)
	return res, b.Apply(res)
}
