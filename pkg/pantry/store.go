// Package pantry keeps a local copy of the owner's inventory in step with
// the REST API. The cache only changes after the server has confirmed a
// write.
package pantry

import (
	"Ginraidee/domain"
	"Ginraidee/internal/utils"
	"Ginraidee/pkg/expiry"
	"Ginraidee/pkg/gateway"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBulkLimit = 4

type (
	InventoryStore interface {
		LoadAll(ctx context.Context) error
		Add(ctx context.Context, req domain.AddInventoryItemRequest) (domain.InventoryItem, error)
		Update(ctx context.Context, id string, patch domain.UpdateInventoryItemRequest) (domain.InventoryItem, error)
		Remove(ctx context.Context, id string) error
		RemoveMany(ctx context.Context, ids []string) ([]string, error)
		Filter(now time.Time, pred expiry.Predicate) []domain.InventoryItem
		Items() []domain.InventoryItem
		SortedByExpiration() []domain.InventoryItem
		Get(id string) (domain.InventoryItem, bool)
		Connected() bool
	}

	inventoryStore struct {
		gateway   gateway.InventoryGateway
		validator *validator.Validate
		logger    *zap.Logger
		bulkLimit int

		mu        sync.RWMutex
		items     []domain.InventoryItem
		connected bool
	}

	Option func(*inventoryStore)

	// BulkDeleteError lists the ids a RemoveMany call could not delete.
	BulkDeleteError struct {
		Failed map[string]error
	}
)

func WithBulkLimit(n int) Option {
	return func(s *inventoryStore) {
		if n > 0 {
			s.bulkLimit = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *inventoryStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewInventoryStore(gw gateway.InventoryGateway, validator *validator.Validate, opts ...Option) InventoryStore {
	s := &inventoryStore{
		gateway:   gw,
		validator: validator,
		logger:    zap.NewNop(),
		bulkLimit: defaultBulkLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = utils.NewValidator()
	}
	return s
}

func (s *inventoryStore) LoadAll(ctx context.Context) error {
	items, err := s.gateway.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.connected = false
		s.logger.Warn("inventory load failed, keeping cached items",
			zap.Int("cached", len(s.items)),
			zap.Error(err),
		)
		return err
	}
	s.items = items
	s.connected = true
	return nil
}

func (s *inventoryStore) Add(ctx context.Context, req domain.AddInventoryItemRequest) (domain.InventoryItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return domain.InventoryItem{}, utils.ValidationError(err)
	}

	item, err := s.gateway.Create(ctx, req)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return item, nil
}

func (s *inventoryStore) Update(ctx context.Context, id string, patch domain.UpdateInventoryItemRequest) (domain.InventoryItem, error) {
	if err := s.validator.Struct(patch); err != nil {
		return domain.InventoryItem{}, utils.ValidationError(err)
	}

	item, err := s.gateway.Update(ctx, id, patch)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.items[i] = item
	} else {
		s.items = append(s.items, item)
	}
	return item, nil
}

func (s *inventoryStore) Remove(ctx context.Context, id string) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(id)
	return nil
}

// RemoveMany deletes every id independently and evicts exactly the ones the
// server confirmed. The returned slice holds the removed ids in input order.
func (s *inventoryStore) RemoveMany(ctx context.Context, ids []string) ([]string, error) {
	ids = dedupe(ids)
	results := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(s.bulkLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i] = s.gateway.Delete(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	removed := make([]string, 0, len(ids))
	failed := map[string]error{}
	for i, id := range ids {
		if results[i] != nil {
			failed[id] = results[i]
			continue
		}
		removed = append(removed, id)
	}
	s.evict(removed...)

	if len(failed) > 0 {
		s.logger.Warn("bulk delete partially failed",
			zap.Int("removed", len(removed)),
			zap.Int("failed", len(failed)),
		)
		return removed, &BulkDeleteError{Failed: failed}
	}
	return removed, nil
}

func (s *inventoryStore) Filter(now time.Time, pred expiry.Predicate) []domain.InventoryItem {
	if pred == nil {
		pred = expiry.Any
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if pred(expiry.StatusOf(item.ExpirationDate.Time, now)) {
			out = append(out, item)
		}
	}
	return out
}

func (s *inventoryStore) Items() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.InventoryItem(nil), s.items...)
}

func (s *inventoryStore) SortedByExpiration() []domain.InventoryItem {
	items := s.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ExpirationDate.Before(items[j].ExpirationDate.Time)
	})
	return items
}

func (s *inventoryStore) Get(id string) (domain.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return domain.InventoryItem{}, false
}

func (s *inventoryStore) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// indexOf expects s.mu to be held.
func (s *inventoryStore) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *inventoryStore) evict(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if _, ok := drop[item.ID]; !ok {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (e *BulkDeleteError) Error() string {
	return fmt.Sprintf("failed to delete %d item(s): %s", len(e.Failed), strings.Join(e.FailedIDs(), ", "))
}

func (e *BulkDeleteError) FailedIDs() []string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (e *BulkDeleteError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, id := range e.FailedIDs() {
		errs = append(errs, e.Failed[id])
	}
	return errs
}

func (e *BulkDeleteError) Category() domain.ErrorCategory { return domain.ErrorCategoryPersistence }

func (e *BulkDeleteError) Localized(lang domain.Language) string {
	return lang.Pick(
		fmt.Sprintf("ลบไม่สำเร็จ %d รายการ", len(e.Failed)),
		fmt.Sprintf("Could not delete %d item(s)", len(e.Failed)),
	)
}
